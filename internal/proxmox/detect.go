package proxmox

import (
	"fmt"
	"os"
	"os/exec"
)

// requiredCommands are the host tools the provisioning procedure shells
// out to. All must be present before anything runs.
var requiredCommands = []string{"pct", "pveam", "pvesm", "pvesh"}

// Preflight verifies the process runs on a Proxmox VE host with root
// privilege. It must be called before any host mutation.
func Preflight() error {
	for _, bin := range requiredCommands {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%s not found in PATH; this tool must run on a Proxmox VE host", bin)
		}
	}
	if os.Geteuid() != 0 {
		return fmt.Errorf("insufficient privilege: must be run as root")
	}
	return nil
}
