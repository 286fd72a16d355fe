package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"newtbox/internal/config"
	"newtbox/internal/prompt"
	"newtbox/internal/provision"
	"newtbox/internal/proxmox"
)

const defaultConfigNote = config.DefaultPath

// runProvision wires the host backend, prompter, and configuration
// together and runs the provisioning procedure.
func (a *App) runProvision(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if a.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if err := proxmox.Preflight(); err != nil {
		return err
	}

	p := &provision.Provisioner{
		Host:   proxmox.NewShellHost(),
		Prompt: prompt.NewIOPrompter(os.Stdin, os.Stdout),
		Config: cfg,
		Logger: logger,
		Out:    os.Stdout,
		Styled: term.IsTerminal(int(os.Stdout.Fd())),
	}

	err = p.Run(cmd.Context())
	if errors.Is(err, provision.ErrAborted) {
		// Declined confirmation is a clean exit, not a failure.
		fmt.Fprintln(os.Stdout, "Aborted, no changes made.")
		return nil
	}
	return err
}
