package main

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/games/mazerun"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/spectate"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeSpectate string
	flagServeDiff     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the maze SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode menu.
Runs are stored per-server (all users share the same scoreboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.maze/host_key

Examples:
  maze serve                           # Listen on :23234 with auto-generated key
  maze serve --ssh :2222               # Listen on port 2222
  maze serve --spectate :8080          # Also stream positions over WebSocket
  maze serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeSpectate, "spectate", "", "Serve a WebSocket spectator feed on this address")
	serveCmd.Flags().StringVar(&flagServeDiff, "difficulty", "", "Difficulty preset for every session")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cleanup, err := setupLogger(false)
	if err != nil {
		return err
	}
	defer cleanup()

	lvls, err := loadLevels()
	if err != nil {
		return err
	}
	mazerun.SetDifficultyPreset(flagServeDiff)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Levels = lvls

	if flagServeSpectate != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		hub := spectate.NewHub(log.Default())
		go func() {
			if err := spectate.ListenAndServe(ctx, flagServeSpectate, hub); err != nil {
				log.Error("spectator feed stopped", "error", err)
			}
		}()
		cfg.Publisher = hub
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting maze SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}

// portOf returns the port of a host:port address, or the address itself.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
