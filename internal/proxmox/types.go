package proxmox

import (
	"fmt"
	"strconv"
)

// ContentType is a Proxmox storage content capability.
type ContentType string

const (
	// ContentRootFS marks storage that can hold container root filesystems.
	ContentRootFS ContentType = "rootdir"

	// ContentTemplate marks storage that can hold container templates.
	ContentTemplate ContentType = "vztmpl"
)

// Storage is a named storage pool on the host.
type Storage struct {
	Name   string
	Type   string
	Active bool
}

// CreateConfig specifies container creation parameters for pct create.
type CreateConfig struct {
	VMID            int
	Hostname        string
	Template        string // template file name, e.g. "debian-12-standard_12.7-1_amd64.tar.zst"
	TemplateStorage string // storage pool holding the template
	Storage         string // rootfs storage pool
	Cores           int
	MemoryMB        int
	SwapMB          int
	DiskGB          int
	Bridge          string
	VLAN            int // 0 = untagged
}

// NetSpec renders the pct net0 specification.
func (c CreateConfig) NetSpec() string {
	spec := fmt.Sprintf("name=eth0,bridge=%s,ip=dhcp", c.Bridge)
	if c.VLAN > 0 {
		spec += ",tag=" + strconv.Itoa(c.VLAN)
	}
	return spec
}

// TemplateVolID renders the template volume ID, e.g.
// "local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst".
func (c CreateConfig) TemplateVolID() string {
	return c.TemplateStorage + ":" + string(ContentTemplate) + "/" + c.Template
}
