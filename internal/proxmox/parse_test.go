package proxmox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStorageStatus(t *testing.T) {
	output := `Name             Type     Status           Total            Used       Available        %
local             dir     active        98497780        12988372        80459652   13.19%
local-lvm     lvmthin     active       832888832        24986664       807902167    3.00%
backup            nfs   inactive               0               0               0    0.00%
`
	storages, err := parseStorageStatus(output)
	require.NoError(t, err)
	require.Len(t, storages, 3)

	assert.Equal(t, Storage{Name: "local", Type: "dir", Active: true}, storages[0])
	assert.Equal(t, Storage{Name: "local-lvm", Type: "lvmthin", Active: true}, storages[1])
	assert.Equal(t, Storage{Name: "backup", Type: "nfs", Active: false}, storages[2])
}

func TestParseStorageStatus_Empty(t *testing.T) {
	storages, err := parseStorageStatus("Name             Type     Status           Total            Used       Available        %\n")
	require.NoError(t, err)
	assert.Empty(t, storages)
}

func TestParseStorageStatus_Malformed(t *testing.T) {
	_, err := parseStorageStatus("local dir\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestParseBridgeLinks(t *testing.T) {
	output := `4: vmbr0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc noqueue state UP mode DEFAULT group default qlen 1000\    link/ether aa:bb:cc:dd:ee:ff brd ff:ff:ff:ff:ff:ff
5: vmbr1: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc noqueue state UP mode DEFAULT group default qlen 1000\    link/ether aa:bb:cc:dd:ee:00 brd ff:ff:ff:ff:ff:ff
6: docker0: <NO-CARRIER,BROADCAST,MULTICAST,UP> mtu 1500 qdisc noqueue state DOWN mode DEFAULT group default
`
	bridges, err := parseBridgeLinks(output)
	require.NoError(t, err)
	assert.Equal(t, []string{"vmbr0", "vmbr1"}, bridges)
}

func TestParseBridgeLinks_VLANAware(t *testing.T) {
	output := "7: vmbr0.100@vmbr0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc noqueue state UP\n"
	bridges, err := parseBridgeLinks(output)
	require.NoError(t, err)
	assert.Equal(t, []string{"vmbr0.100"}, bridges)
}

func TestParseBridgeLinks_NoBridges(t *testing.T) {
	bridges, err := parseBridgeLinks("")
	require.NoError(t, err)
	assert.Empty(t, bridges)
}

func TestParseTemplateCatalog(t *testing.T) {
	output := `system          debian-11-standard_11.7-1_amd64.tar.zst
system          debian-12-standard_12.2-1_amd64.tar.zst
system          debian-12-standard_12.7-1_amd64.tar.zst
`
	templates, err := parseTemplateCatalog(output)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"debian-11-standard_11.7-1_amd64.tar.zst",
		"debian-12-standard_12.2-1_amd64.tar.zst",
		"debian-12-standard_12.7-1_amd64.tar.zst",
	}, templates)
}

func TestParseTemplateCatalog_Malformed(t *testing.T) {
	_, err := parseTemplateCatalog("debian-12-standard\n")
	require.Error(t, err)
}

func TestParseTemplateList(t *testing.T) {
	output := `NAME                                                         SIZE
local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst         130.41MB
local:vztmpl/ubuntu-24.04-standard_24.04-2_amd64.tar.zst     129.18MB
`
	volids := parseTemplateList(output)
	assert.Equal(t, []string{
		"local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst",
		"local:vztmpl/ubuntu-24.04-standard_24.04-2_amd64.tar.zst",
	}, volids)
}

func TestNetSpec(t *testing.T) {
	cfg := CreateConfig{Bridge: "vmbr1", VLAN: 100}
	assert.Equal(t, "name=eth0,bridge=vmbr1,ip=dhcp,tag=100", cfg.NetSpec())

	cfg = CreateConfig{Bridge: "vmbr0"}
	assert.Equal(t, "name=eth0,bridge=vmbr0,ip=dhcp", cfg.NetSpec())
}

func TestTemplateVolID(t *testing.T) {
	cfg := CreateConfig{
		TemplateStorage: "local",
		Template:        "debian-12-standard_12.7-1_amd64.tar.zst",
	}
	assert.Equal(t, "local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst", cfg.TemplateVolID())
}

func TestCreateArgs(t *testing.T) {
	cfg := CreateConfig{
		VMID:            105,
		Hostname:        "newt",
		Template:        "debian-12-standard_12.7-1_amd64.tar.zst",
		TemplateStorage: "local",
		Storage:         "local-lvm",
		Cores:           1,
		MemoryMB:        512,
		SwapMB:          0,
		DiskGB:          8,
		Bridge:          "vmbr0",
	}

	args := createArgs(cfg)
	assert.Equal(t, []string{
		"create", "105", "local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst",
		"--hostname", "newt",
		"--cores", "1",
		"--memory", "512",
		"--swap", "0",
		"--rootfs", "local-lvm:8",
		"--net0", "name=eth0,bridge=vmbr0,ip=dhcp",
		"--unprivileged", "1",
		"--features", "nesting=1",
		"--onboot", "1",
		"--start", "0",
	}, args)
}
