package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mcpmanager/internal/app"
	"mcpmanager/pkg/logging"
)

var (
	servePort    uint16
	serveSSEPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP management server in the foreground",
	Long: `Starts the embedded MCP server over SSE so automation clients can manage
the Claude configuration remotely. The configuration file is watched for
external changes while the server runs.

The port and SSE path default to the saved settings; flags override them
for this run only. The server binds to 127.0.0.1 and stops on Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if flagDebug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stderr)

	application := app.New()
	defer application.Shutdown()

	// Flags override the saved settings for this run only; serve implies the
	// server is wanted regardless of the persisted enable flag.
	effective := application.SettingsStore.Load()
	effective.MCPServerEnabled = true
	if cmd.Flags().Changed("port") {
		effective.MCPServerPort = servePort
	}
	if cmd.Flags().Changed("sse-path") {
		effective.MCPSSEPath = serveSSEPath
	}
	if flagConfigPath != "" {
		effective.ClaudeConfigPath = flagConfigPath
	}
	application.SettingsStore.Apply(effective)

	if _, err := application.ConfigStore.Load(effective.ClaudeConfigPath); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome, err := application.Lifecycle.Start()
	if err != nil {
		return err
	}
	if !outcome.Success {
		return errors.New(outcome.Message)
	}

	fmt.Printf("MCP server listening on %s (Ctrl+C to stop)\n", application.Lifecycle.Status().URL)

	watcher := app.NewConfigWatcher(application.ConfigStore.Path(), application.Broadcaster)

	g, ctx := errgroup.WithContext(sigCtx)
	g.Go(func() error { return watcher.Run(ctx) })
	g.Go(func() error {
		// The supervisor resets the status when the server dies; surface that
		// instead of sitting on a dead listener.
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if !application.Lifecycle.Status().Running {
					return errors.New("MCP server exited unexpectedly")
				}
			}
		}
	})

	err = g.Wait()
	if _, stopErr := application.Lifecycle.Stop(); stopErr != nil {
		logging.Error("Serve", stopErr, "Failed to stop MCP server")
	}
	if err != nil && sigCtx.Err() == nil {
		return err
	}
	return nil
}

func init() {
	serveCmd.Flags().Uint16Var(&servePort, "port", 8000, "Port to listen on")
	serveCmd.Flags().StringVar(&serveSSEPath, "sse-path", "/sse", "HTTP path of the SSE endpoint")
	rootCmd.AddCommand(serveCmd)
}
