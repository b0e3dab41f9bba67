// Command portkey-setup wires the Claude coding-agent CLI to route its API
// traffic through a Portkey gateway, by writing the routing variables into
// the settings layer of the user's choice.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/portkey-ai/gateway-setup/internal/logging"
	"github.com/portkey-ai/gateway-setup/internal/wizard"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := wizard.Options{}
	var debug bool

	root := &cobra.Command{
		Use:   "portkey-setup",
		Short: "Route the Claude CLI through a Portkey gateway",
		Long: `portkey-setup configures the Claude coding-agent CLI to send its API
traffic through a Portkey gateway. It writes the gateway variables into one
of the CLI's settings layers (global, project, project-local), your shell
profile, or a standalone env file, and encodes your routing choice — a
provider, a server-side config, or subscription pass-through — into the
custom-headers variable.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			home, _ := os.UserHomeDir()
			logging.Setup(debug, logging.DefaultLogFile(home))
			// A project .env may carry the gateway key; load it before the
			// environment snapshot is taken so it participates in resolution.
			if err := godotenv.Load(); err == nil {
				log.Debug("loaded .env")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return wizard.Run(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging, mirrored to a rotating log file")

	flags := root.Flags()
	flags.BoolVarP(&opts.Yes, "yes", "y", false, "answer every question with its default")
	flags.StringVar(&opts.APIKey, "api-key", "", "gateway API key")
	flags.StringVar(&opts.Provider, "provider", "", "route to this provider slug (with or without the leading @)")
	flags.StringVar(&opts.ConfigID, "config", "", "apply this server-side gateway config")
	flags.BoolVar(&opts.Passthrough, "passthrough", false, "pass your existing subscription through the gateway")
	flags.StringSliceVar(&opts.ForwardHeaders, "forward-header", nil, "header names forwarded upstream in pass-through mode (repeatable)")
	flags.StringVar(&opts.Model, "model", "", "model override")
	flags.StringVar(&opts.SmallFastModel, "small-fast-model", "", "background model override")
	flags.StringVar(&opts.GatewayURL, "gateway-url", "", "gateway base URL written to the CLI (default hosted gateway)")
	flags.StringVar(&opts.ControlURL, "control-url", "", "control-plane URL for listing providers and configs (defaults to the gateway URL)")
	flags.StringVar(&opts.Target, "target", "", "where to write: global, project, project-local, shell, env-file")
	flags.StringVar(&opts.EnvFile, "env-file", "", "path for --target env-file (default portkey.env)")
	flags.BoolVar(&opts.CopyHeader, "copy", false, "copy the routing header to the clipboard")
	flags.BoolVar(&opts.NoBrowser, "no-browser", false, "never open the dashboard in a browser")

	root.AddCommand(newStatusCommand(), newUninstallCommand(), newVersionCommand())
	return root
}

func newStatusCommand() *cobra.Command {
	opts := wizard.Options{}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the resolved gateway configuration across all layers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wizard.Status(opts)
		},
	}
	cmd.Flags().BoolVar(&opts.CopyHeader, "copy", false, "copy the winning routing header to the clipboard")
	return cmd
}

func newUninstallCommand() *cobra.Command {
	opts := wizard.Options{}
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove gateway routing from every writable layer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wizard.Uninstall(opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the portkey-setup version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "portkey-setup", version)
		},
	}
}
