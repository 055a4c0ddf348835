// Command slapp runs the roster bot.
//
// Usage:
//
//	slapp serve
//	slapp query --teams kraken
//	slapp version
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/slapp/internal/app"
	"github.com/MrSnakeDoc/slapp/internal/config"
	"github.com/MrSnakeDoc/slapp/internal/version"
)

func main() {
	var envFile string
	root := &cobra.Command{
		Use:           "slapp",
		Short:         "Splatoon roster lookup bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env if present
			_ = godotenv.Load(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading SLAPP_* settings")

	root.AddCommand(serveCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		log.Fatalf("❌ slapp failed: %v", err)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect the bot and serve the admin HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(config.Load())
			if err != nil {
				return err
			}
			return a.Run()
		},
	}
}

func queryCmd() *cobra.Command {
	var rosterFile string
	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Render a query against the roster file and print the pages as JSON",
		Args:  cobra.MinimumNArgs(1),
		// Flags belong to the query itself (--teams, --exact, ...)
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			args = extractRoster(args, &rosterFile)
			if rosterFile != "" {
				cfg.RosterFile = rosterFile
			}
			return app.Query(cmd.Context(), cfg, strings.Join(args, " "), os.Stdout)
		},
	}
	return cmd
}

// extractRoster pulls "--roster=<path>" out of the raw query arguments.
func extractRoster(args []string, path *string) []string {
	out := args[:0]
	for _, a := range args {
		if p, ok := strings.CutPrefix(a, "--roster="); ok {
			*path = p
			continue
		}
		out = append(out, a)
	}
	return out
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.String())
		},
	}
}
