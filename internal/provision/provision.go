package provision

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"newtbox/internal/config"
	"newtbox/internal/prompt"
	"newtbox/internal/proxmox"
)

// Provisioner runs the provisioning procedure: discover host resources,
// collect parameters, resolve the template, confirm, create and start
// the container, wait for network, then bootstrap the Newt agent.
//
// Execution is strictly sequential; every step either advances the plan
// or aborts the whole run. There is no rollback of a partially created
// container.
type Provisioner struct {
	Host   proxmox.Host
	Prompt prompt.Prompter
	Config *config.Config
	Logger *log.Logger

	// Out receives user-facing text (notices, the confirmation summary).
	Out io.Writer

	// Styled enables lipgloss styling; leave false when stdout is not a
	// terminal.
	Styled bool

	// sleep overrides time.Sleep in tests.
	sleep func(time.Duration)
}

// Run executes the whole procedure. The returned error is ErrAborted
// when the operator declined the confirmation gate; callers should treat
// that as a clean exit.
func (p *Provisioner) Run(ctx context.Context) error {
	plan, err := p.Discover(ctx)
	if err != nil {
		return err
	}
	if err := p.Collect(plan); err != nil {
		return err
	}
	if err := p.ResolveTemplate(ctx, plan); err != nil {
		return err
	}
	ok, err := p.ConfirmPlan(plan)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	if err := p.Apply(ctx, plan); err != nil {
		return err
	}
	if err := p.WaitNetwork(ctx, plan.VMID); err != nil {
		return err
	}
	if err := p.Bootstrap(ctx, plan.VMID); err != nil {
		return err
	}
	p.Logger.Info("container provisioned", "vmid", plan.VMID, "hostname", plan.Hostname)
	return nil
}

// Discover queries the host for the next free VMID, content-capable
// storage pools, and network bridges. Missing storage of either kind is
// fatal; missing bridges fall back to the configured default.
func (p *Provisioner) Discover(ctx context.Context) (*Plan, error) {
	vmid, err := p.Host.NextID(ctx)
	if err != nil {
		return nil, err
	}

	rootfs, err := p.storageNames(ctx, proxmox.ContentRootFS)
	if err != nil {
		return nil, err
	}
	templates, err := p.storageNames(ctx, proxmox.ContentTemplate)
	if err != nil {
		return nil, err
	}

	bridges, err := p.Host.Bridges(ctx)
	if err != nil {
		return nil, err
	}
	if len(bridges) == 0 {
		p.Logger.Warn("no bridges discovered, assuming default", "bridge", p.Config.DefaultBridge)
		bridges = []string{p.Config.DefaultBridge}
	}

	p.Logger.Debug("discovered host resources",
		"vmid", vmid,
		"rootfs_storages", strings.Join(rootfs, ","),
		"template_storages", strings.Join(templates, ","),
		"bridges", strings.Join(bridges, ","))

	return &Plan{
		VMID:             vmid,
		rootfsStorages:   rootfs,
		templateStorages: templates,
		bridges:          bridges,
	}, nil
}

func (p *Provisioner) storageNames(ctx context.Context, content proxmox.ContentType) ([]string, error) {
	storages, err := p.Host.Storages(ctx, content)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(storages))
	for _, s := range storages {
		if s.Active {
			names = append(names, s.Name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no active storage with content type %s on this host", ErrNoStorage, content)
	}
	return names, nil
}

// Collect fills the plan from environment-seeded values and interactive
// prompts. Seeded values skip their prompt; seeded storage names must
// exist on the host.
func (p *Provisioner) Collect(plan *Plan) error {
	var err error

	if p.Config.Seeded("hostname") {
		plan.Hostname = p.Config.Hostname
	} else {
		plan.Hostname, err = p.Prompt.Input("Hostname", p.Config.Hostname)
		if err != nil {
			return err
		}
	}

	plan.Storage, err = p.pickStorage("rootfs storage", "storage", p.Config.Storage, plan.rootfsStorages)
	if err != nil {
		return err
	}
	plan.TemplateStorage, err = p.pickStorage("template storage", "template_storage", p.Config.TemplateStorage, plan.templateStorages)
	if err != nil {
		return err
	}

	if p.Config.Seeded("bridge") {
		plan.Bridge = p.Config.Bridge
	} else {
		plan.Bridge, err = p.Prompt.Select("bridge", plan.bridges)
		if err != nil {
			return err
		}
	}

	plan.VLAN, err = p.collectVLAN()
	return err
}

func (p *Provisioner) pickStorage(label, seedKey, seeded string, options []string) (string, error) {
	if p.Config.Seeded(seedKey) {
		for _, name := range options {
			if name == seeded {
				return seeded, nil
			}
		}
		return "", fmt.Errorf("%s %q not found on host (have %s)", label, seeded, strings.Join(options, ", "))
	}
	return p.Prompt.Select(label, options)
}

func (p *Provisioner) collectVLAN() (int, error) {
	for {
		answer, err := p.Prompt.Input("VLAN tag (empty for none)", "")
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return 0, nil
		}
		tag, err := strconv.Atoi(answer)
		if err != nil || tag < 1 || tag > 4094 {
			fmt.Fprintf(p.Out, "Invalid VLAN tag %q, enter a number between 1 and 4094\n", answer)
			continue
		}
		return tag, nil
	}
}

// ResolveTemplate picks the latest catalog entry matching the configured
// pattern and downloads it unless the template storage already caches it.
func (p *Provisioner) ResolveTemplate(ctx context.Context, plan *Plan) error {
	available, err := p.Host.AvailableTemplates(ctx, p.Config.TemplateSection)
	if err != nil {
		return err
	}

	// Last match wins: the catalog lists versions oldest first.
	var match string
	for _, tmpl := range available {
		if strings.HasPrefix(tmpl, p.Config.TemplatePattern) {
			match = tmpl
		}
	}
	if match == "" {
		return fmt.Errorf("%w: nothing matching %q in the catalog; run \"pveam update\" and retry",
			ErrTemplateNotFound, p.Config.TemplatePattern)
	}
	plan.Template = match

	cached, err := p.Host.HasTemplate(ctx, plan.TemplateStorage, match)
	if err != nil {
		return err
	}
	if cached {
		p.Logger.Info("template already cached", "template", match, "storage", plan.TemplateStorage)
		return nil
	}

	p.Logger.Info("downloading template", "template", match, "storage", plan.TemplateStorage)
	return p.Host.DownloadTemplate(ctx, plan.TemplateStorage, match)
}

// ConfirmPlan shows every resolved parameter and asks for explicit
// confirmation. No host mutation happens before this gate.
func (p *Provisioner) ConfirmPlan(plan *Plan) (bool, error) {
	fmt.Fprintln(p.Out)
	fmt.Fprint(p.Out, p.renderSummary(plan))
	fmt.Fprintln(p.Out)
	return p.Prompt.Confirm("Create container?")
}

// Apply creates and starts the container, then waits the fixed settle
// delay before the network probe begins.
func (p *Provisioner) Apply(ctx context.Context, plan *Plan) error {
	cc := plan.createConfig(p.Config)

	p.Logger.Info("creating container", "vmid", cc.VMID, "template", cc.Template, "storage", cc.Storage)
	if err := p.Host.Create(ctx, cc); err != nil {
		return err
	}

	p.Logger.Info("starting container", "vmid", cc.VMID)
	if err := p.Host.Start(ctx, cc.VMID); err != nil {
		return err
	}

	p.pause(p.Config.SettleDelay)
	return nil
}

// Bootstrap installs the minimal dependencies and pipes the remote Newt
// installer into a shell inside the container. The installer is an
// opaque external collaborator; its content is not verified.
func (p *Provisioner) Bootstrap(ctx context.Context, vmid int) error {
	p.Logger.Info("installing dependencies", "vmid", vmid)
	install := "export DEBIAN_FRONTEND=noninteractive; apt-get update -qq && apt-get install -y -qq curl ca-certificates"
	if err := p.Host.Exec(ctx, vmid, []string{"sh", "-c", install}); err != nil {
		return fmt.Errorf("failed to install dependencies in container %d: %w", vmid, err)
	}

	p.Logger.Info("running Newt installer", "vmid", vmid, "url", p.Config.InstallerURL)
	bootstrap := fmt.Sprintf("curl -fsSL %s | bash", p.Config.InstallerURL)
	return p.Host.ExecInteractive(ctx, vmid, []string{"sh", "-c", bootstrap})
}

func (p *Provisioner) pause(d time.Duration) {
	if p.sleep != nil {
		p.sleep(d)
		return
	}
	time.Sleep(d)
}
