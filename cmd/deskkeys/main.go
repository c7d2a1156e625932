package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/studiowebux/deskkeys/internal/cli"
	"github.com/studiowebux/deskkeys/internal/config"
	"github.com/studiowebux/deskkeys/internal/tui"
	"github.com/studiowebux/deskkeys/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "deskkeys",
	Short: "deskkeys - keyboard shortcuts for the desk",
	Long: `deskkeys maps keyboard combinations to desk actions.

Run without arguments to start the terminal desk, or use a subcommand to
serve shortcuts to browser pages, inspect the effective table or check a
keybinds file.

Examples:
  deskkeys                              # Start the terminal desk
  deskkeys serve --addr localhost:8765  # Dispatch keydowns from browser pages
  deskkeys list -o json --query '[].combo'
  deskkeys normalize Cmd+K "Shift+Ctrl+Esc"
  deskkeys validate .keybinds.yaml
  deskkeys init-config --format jsonc`,
	Version: version.Version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(tui.RunOptions{KeybindsPath: flagKeybinds})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the shortcut dispatcher over WebSocket",
	Long: `Serve the shortcut dispatcher to browser pages.

Pages send keydown frames to ws://<addr>/ws and receive whether the
shortcut fired and whether to prevent the default action.
GET /shortcuts lists the table as JSON (optionally ?query=<JMESPath>),
GET /help renders it as HTML.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cli.Serve(ctx, cli.ServeOptions{
			Addr:         serveAddr,
			KeybindsPath: flagKeybinds,
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the effective shortcut table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.List(cmd.OutOrStdout(), cli.ListOptions{
			KeybindsPath: flagKeybinds,
			OutputFormat: listOutput,
			Filter:       listFilter,
			Query:        listQuery,
			Color:        isatty.IsTerminal(os.Stdout.Fd()),
		})
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <combo>...",
	Short: "Print the canonical form of key combinations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Normalize(cmd.OutOrStdout(), args)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a keybinds file for invalid, unknown or shadowed shortcuts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		path := flagKeybinds
		if len(args) > 0 {
			path = args[0]
		}
		return cli.Validate(cmd.OutOrStdout(), path)
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write the default keybinds to ~/.deskkeys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		_, err := cli.InitConfig(cmd.OutOrStdout(), initFormat, initForce)
		return err
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how often each shortcut fired",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.Stats(cmd.OutOrStdout(), cli.StatsOptions{
			Limit: statsLimit,
			Clear: statsClear,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "deskkeys %s\n", version.Version)
		if !versionCheck {
			return nil
		}
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.CheckVersion(cmd.Context(), cmd.OutOrStdout())
	},
}

// Global flags
var (
	flagKeybinds string
)

// Flags for serve
var (
	serveAddr string
)

// Flags for list
var (
	listOutput string
	listFilter string
	listQuery  string
)

// Flags for init-config
var (
	initFormat string
	initForce  bool
)

// Flags for stats
var (
	statsLimit int
	statsClear bool
)

// Flags for version
var (
	versionCheck bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagKeybinds, "keybinds", "k", "", "Keybinds file (default: ./.keybinds.* or ~/.deskkeys/keybinds.yaml)")

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default: settings.yaml listen_addr)")

	listCmd.Flags().StringVarP(&listOutput, "output", "o", "text", "Output format (text/json/yaml)")
	listCmd.Flags().StringVar(&listFilter, "filter", "", "JMESPath filter applied to the JSON listing")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "JMESPath query or $(shell command) applied to the JSON listing")

	initConfigCmd.Flags().StringVarP(&initFormat, "format", "f", "yaml", "File format (yaml/json/jsonc)")
	initConfigCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing keybinds file")

	statsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 20, "Number of shortcuts to show (0 for all)")
	statsCmd.Flags().BoolVar(&statsClear, "clear", false, "Delete recorded usage")

	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
