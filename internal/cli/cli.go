package cli

import (
	"github.com/spf13/cobra"
)

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Runtime state
	verbose    bool
	configPath string

	// Version information
	versionInfo versionInfo
}

type versionInfo struct {
	Version string
	Commit  string
	Date    string
}

// New creates a new CLI application
func New() *App {
	app := &App{}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = versionInfo{Version: version, Commit: commit, Date: date}
}

// setupRootCmd configures the root Cobra command. The provisioning
// procedure runs directly from the root: there are no parameter flags,
// everything is gathered interactively or from the environment.
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "newtbox",
		Short: "Provision a Proxmox LXC container running the Newt tunneling agent",
		Long: `newtbox creates a Debian LXC container on the local Proxmox VE host
and bootstraps the Newt tunneling agent inside it.

All parameters are gathered interactively, with sensible defaults and
auto-selection when only one candidate exists. Hostname, bridge, memory,
disk, and storage names can be pre-seeded via NEWTBOX_* environment
variables to skip their prompts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runProvision,
	}

	// Add persistent flags
	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Verbose output")
	a.rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Path to config file (default "+defaultConfigNote+")")

	a.rootCmd.AddCommand(NewVersionCmd(a))
}
