// Package cli implements the ruwler command-line tool.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ruwler/ruwler-go"
)

// Options are the global flags shared by every command.
type Options struct {
	ConfigFile   string
	EnvFile      string
	Host         string
	Format       string
	AuthMode     string
	LogLevel     string
	OTLPEndpoint string
	Debug        bool
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "ruwler",
		Short: "Ruwler API command-line client",
		Long: `ruwler talks to the Ruwler marketing platform API.

Configuration is read from ruwler.yml, .env files and RUWLER_* environment
variables. RUWLER_API_KEY holds the credential.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigFile, "config", "", "Path to config file (default: ./ruwler.yml)")
	pf.StringVar(&opts.EnvFile, "env-file", "", "Path to .env file (default: ./.env.ruwler or ./.env)")
	pf.StringVar(&opts.Host, "host", "", "API host or base URL")
	pf.StringVar(&opts.Format, "format", "", "Content format: jsonld, json or html")
	pf.StringVar(&opts.AuthMode, "auth-mode", "", "Authentication mode: apikey or token")
	pf.BoolVar(&opts.Debug, "debug", false, "Dump transport requests and responses")
	pf.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&opts.OTLPEndpoint, "otlp-endpoint", "", "OTLP/HTTP collector host:port for traces and metrics")

	cmd.AddCommand(newRequestCmd(opts))
	cmd.AddCommand(newLoginCmd(opts))
	cmd.AddCommand(newVersionCmd())
	for _, e := range ruwler.Catalog() {
		cmd.AddCommand(newResourceCmd(opts, e))
	}
	return cmd
}
