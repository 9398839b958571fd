package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the google-workspace-mcp application
var rootCmd = &cobra.Command{
	Use:   "google-workspace-mcp",
	Short: "MCP server for Google Workspace",
	Long: `google-workspace-mcp is a Model Context Protocol (MCP) server that
exposes Google Workspace services to AI assistants: Sheets, Chat,
Admin, Forms, Keep, Meet, Contacts, and Slides.

By default the server runs in read-only mode over stdio. Use --yolo to
enable write operations and --transport streamable-http for HTTP
deployments.`,
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
	rootCmd.SetVersionTemplate(`{{printf "google-workspace-mcp version %s\n" .Version}}`)

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
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("google-workspace-mcp version %s\n", version)
		},
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
