// Package cli implements the hypract command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	groupSwitching = "switching"
	groupQuery     = "query"
	groupHosts     = "hosts"
	groupTooling   = "tooling"
)

var (
	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// rootOptions holds the global flags. Empty values leave the config alone.
type rootOptions struct {
	configPath string
	statePath  string
	backend    string
	logLevel   string
}

// NewRootCommand builds the hypract command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:     "hypract",
		Version: version,
		Short:   "Activities on top of compositor workspaces",
		Long: `hypract groups workspaces into activities. Each activity has its own set of
workspaces with the same short names; switching activity keeps you on the
same short name in the other activity.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.SetHelpFunc(customHelpFunc)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default: ~/.config/hypract/config.yaml)")
	pf.StringVar(&opts.statePath, "state", "", "State file (overrides state_path)")
	pf.StringVar(&opts.backend, "backend", "", "Compositor backend: auto, hyprland or ewmh (overrides backend)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warning or error (overrides log_level)")

	root.AddGroup(
		&cobra.Group{ID: groupSwitching, Title: "Switching:"},
		&cobra.Group{ID: groupQuery, Title: "Querying:"},
		&cobra.Group{ID: groupHosts, Title: "Pickers & Integrations:"},
		&cobra.Group{ID: groupTooling, Title: "Configuration & Tooling:"},
	)

	root.AddCommand(
		newSwitchWorkspaceCmd(opts),
		newSwitchActivityCmd(opts),
		newCycleCmd(opts, "next-workspace", "Switch to the next workspace of the current activity", cycleWorkspace, 1),
		newCycleCmd(opts, "previous-workspace", "Switch to the previous workspace of the current activity", cycleWorkspace, -1),
		newCycleCmd(opts, "next-activity", "Switch to the next activity", cycleActivity, 1),
		newCycleCmd(opts, "previous-activity", "Switch to the previous activity", cycleActivity, -1),
		newGetCurrentActivityCmd(opts),
		newGetAllActivitiesCmd(opts),
		newReconcileCmd(opts),
		newLauncherCmd(opts),
		newPaletteCmd(opts),
		newRofiScriptCmd(opts),
		newPickCmd(opts),
		newMCPCmd(opts),
		newConfigCmd(opts),
	)
	root.SetHelpCommandGroupID(groupTooling)
	root.SetCompletionCommandGroupID(groupTooling)

	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(version)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root.ErrOrStderr(), err.Error())
		return 1
	}
	return 0
}

// customHelpFunc prints help with colored group titles.
func customHelpFunc(cmd *cobra.Command, _ []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	} else if cmd.Short != "" {
		help.WriteString(cmd.Short)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	for _, group := range cmd.Groups() {
		help.WriteString(groupTitleColor.Sprint(group.Title))
		help.WriteString("\n")
		for _, c := range cmd.Commands() {
			if c.GroupID == group.ID && c.IsAvailableCommand() {
				fmt.Fprintf(&help, "  %-20s %s\n", c.Name(), c.Short)
			}
		}
		help.WriteString("\n")
	}

	hasUngrouped := false
	for _, c := range cmd.Commands() {
		if c.GroupID != "" || !c.IsAvailableCommand() {
			continue
		}
		if !hasUngrouped {
			help.WriteString(sectionTitleColor.Sprint("Commands:"))
			help.WriteString("\n")
			hasUngrouped = true
		}
		fmt.Fprintf(&help, "  %-20s %s\n", c.Name(), c.Short)
	}
	if hasUngrouped {
		help.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailableInheritedFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}
