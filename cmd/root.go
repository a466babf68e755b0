package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the puchcal application
var rootCmd = &cobra.Command{
	Use:   "puchcal",
	Short: "Google Calendar MCP server for the Puch AI WhatsApp assistant",
	Long: `puchcal exposes Google Calendar as MCP (Model Context Protocol) tools
for the Puch AI WhatsApp assistant.

It can run as:
  - An MCP server over stdio (default)
  - An MCP server over streamable HTTP, guarded by a bearer token`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "puchcal version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the puchcal version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("puchcal version %s\n", version)
		},
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
