package provision

import (
	"newtbox/internal/config"
	"newtbox/internal/proxmox"
)

// Plan is the fully resolved parameter set for one provisioning run,
// threaded explicitly through the procedure steps.
type Plan struct {
	VMID            int
	Hostname        string
	Storage         string
	TemplateStorage string
	Template        string
	Bridge          string
	VLAN            int // 0 = untagged

	// Discovery results consumed by the collection step.
	rootfsStorages   []string
	templateStorages []string
	bridges          []string
}

// createConfig materializes the pct creation parameters from the plan and
// the fixed resource shape.
func (p *Plan) createConfig(cfg *config.Config) proxmox.CreateConfig {
	return proxmox.CreateConfig{
		VMID:            p.VMID,
		Hostname:        p.Hostname,
		Template:        p.Template,
		TemplateStorage: p.TemplateStorage,
		Storage:         p.Storage,
		Cores:           cfg.Cores,
		MemoryMB:        cfg.MemoryMB,
		SwapMB:          cfg.SwapMB,
		DiskGB:          cfg.DiskGB,
		Bridge:          p.Bridge,
		VLAN:            p.VLAN,
	}
}
