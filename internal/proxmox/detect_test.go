package proxmox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreflight_MissingToolingNamesTheBinary(t *testing.T) {
	// An empty PATH guarantees no Proxmox tooling resolves.
	t.Setenv("PATH", t.TempDir())

	err := Preflight()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pct")
	assert.Contains(t, err.Error(), "Proxmox")
}

func TestRequiredCommands(t *testing.T) {
	assert.Equal(t, []string{"pct", "pveam", "pvesm", "pvesh"}, requiredCommands)
}
