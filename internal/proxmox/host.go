package proxmox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Host is the Proxmox VE control surface consumed by the provisioning
// procedure. Every method maps to one host-level command.
type Host interface {
	// NextID returns the next free container/VM identifier.
	NextID(ctx context.Context) (int, error)

	// Storages lists enabled storage pools that support the given content type.
	Storages(ctx context.Context, content ContentType) ([]Storage, error)

	// Bridges lists host network bridge names.
	Bridges(ctx context.Context) ([]string, error)

	// AvailableTemplates lists template file names from the host's
	// available-template catalog, filtered to the given section.
	AvailableTemplates(ctx context.Context, section string) ([]string, error)

	// HasTemplate reports whether the storage pool already caches the template.
	HasTemplate(ctx context.Context, storage, template string) (bool, error)

	// DownloadTemplate downloads the template to the storage pool.
	DownloadTemplate(ctx context.Context, storage, template string) error

	// Create creates a container in a stopped state.
	Create(ctx context.Context, cfg CreateConfig) error

	// Start starts a previously created container.
	Start(ctx context.Context, vmid int) error

	// Exec runs a command inside a running container, discarding output.
	// A non-zero exit status is returned as an error.
	Exec(ctx context.Context, vmid int, command []string) error

	// ExecInteractive runs a command inside a running container with the
	// invoking terminal's stdio attached.
	ExecInteractive(ctx context.Context, vmid int, command []string) error
}

// ShellHost implements Host by shelling out to the Proxmox VE CLI
// tools (pvesh, pvesm, pveam, pct) and iproute2.
type ShellHost struct {
	// Stdout and Stderr receive output from long-running commands such
	// as template downloads. They default to the process stdio.
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellHost creates a ShellHost writing command output to the
// process stdio.
func NewShellHost() *ShellHost {
	return &ShellHost{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (h *ShellHost) NextID(ctx context.Context) (int, error) {
	out, err := h.run(ctx, "pvesh", "get", "/cluster/nextid")
	if err != nil {
		return 0, fmt.Errorf("failed to query next free VMID: %w", err)
	}
	id, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("unexpected pvesh nextid output %q: %w", strings.TrimSpace(out), err)
	}
	return id, nil
}

func (h *ShellHost) Storages(ctx context.Context, content ContentType) ([]Storage, error) {
	out, err := h.run(ctx, "pvesm", "status", "--enabled", "--content", string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s storage: %w", content, err)
	}
	return parseStorageStatus(out)
}

func (h *ShellHost) Bridges(ctx context.Context) ([]string, error) {
	out, err := h.run(ctx, "ip", "-o", "link", "show", "type", "bridge")
	if err != nil {
		return nil, fmt.Errorf("failed to list bridges: %w", err)
	}
	return parseBridgeLinks(out)
}

func (h *ShellHost) AvailableTemplates(ctx context.Context, section string) ([]string, error) {
	out, err := h.run(ctx, "pveam", "available", "--section", section)
	if err != nil {
		return nil, fmt.Errorf("failed to list available templates: %w", err)
	}
	return parseTemplateCatalog(out)
}

func (h *ShellHost) HasTemplate(ctx context.Context, storage, template string) (bool, error) {
	out, err := h.run(ctx, "pveam", "list", storage)
	if err != nil {
		return false, fmt.Errorf("failed to list templates on %s: %w", storage, err)
	}
	for _, volid := range parseTemplateList(out) {
		if strings.HasSuffix(volid, "/"+template) {
			return true, nil
		}
	}
	return false, nil
}

func (h *ShellHost) DownloadTemplate(ctx context.Context, storage, template string) error {
	// Attached stdio so the operator sees download progress.
	cmd := exec.CommandContext(ctx, "pveam", "download", storage, template)
	cmd.Stdout = h.Stdout
	cmd.Stderr = h.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to download template %s to %s: %w", template, storage, err)
	}
	return nil
}

func (h *ShellHost) Create(ctx context.Context, cfg CreateConfig) error {
	cmd := exec.CommandContext(ctx, "pct", createArgs(cfg)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to create container %d: %s", cfg.VMID, strings.TrimSpace(string(output)))
	}
	return nil
}

func (h *ShellHost) Start(ctx context.Context, vmid int) error {
	cmd := exec.CommandContext(ctx, "pct", "start", strconv.Itoa(vmid))
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to start container %d: %s", vmid, strings.TrimSpace(string(output)))
	}
	return nil
}

func (h *ShellHost) Exec(ctx context.Context, vmid int, command []string) error {
	args := append([]string{"exec", strconv.Itoa(vmid), "--"}, command...)
	cmd := exec.CommandContext(ctx, "pct", args...)
	return cmd.Run()
}

func (h *ShellHost) ExecInteractive(ctx context.Context, vmid int, command []string) error {
	args := append([]string{"exec", strconv.Itoa(vmid), "--"}, command...)
	cmd := exec.CommandContext(ctx, "pct", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = h.Stdout
	cmd.Stderr = h.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command failed inside container %d: %w", vmid, err)
	}
	return nil
}

// createArgs builds the pct create argument list for a container that is
// created stopped, boots with the host, and has nesting enabled.
func createArgs(cfg CreateConfig) []string {
	return []string{
		"create", strconv.Itoa(cfg.VMID), cfg.TemplateVolID(),
		"--hostname", cfg.Hostname,
		"--cores", strconv.Itoa(cfg.Cores),
		"--memory", strconv.Itoa(cfg.MemoryMB),
		"--swap", strconv.Itoa(cfg.SwapMB),
		"--rootfs", fmt.Sprintf("%s:%d", cfg.Storage, cfg.DiskGB),
		"--net0", cfg.NetSpec(),
		"--unprivileged", "1",
		"--features", "nesting=1",
		"--onboot", "1",
		"--start", "0",
	}
}

// run executes a host command and returns its stdout. Stderr from a
// failing command is surfaced in the error.
func (h *ShellHost) run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(string(exitErr.Stderr))
			if msg == "" {
				msg = err.Error()
			}
			return "", fmt.Errorf("%s: %s", name, msg)
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(output), nil
}

// Verify ShellHost implements Host interface
var _ Host = (*ShellHost)(nil)
