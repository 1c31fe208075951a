package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/octaltask/octaltask/internal/api"
	"github.com/octaltask/octaltask/internal/config"
	"github.com/octaltask/octaltask/internal/identity"
	"github.com/octaltask/octaltask/internal/state"
	"github.com/octaltask/octaltask/internal/store"
	"github.com/octaltask/octaltask/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("octaltask %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	st, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	container := state.New(st, buildProvider(cfg, logger), logger)
	if cfg.API.URL != "" {
		client := api.New(cfg.API.URL, cfg.API.Token, time.Duration(cfg.API.TimeoutSeconds)*time.Second, logger)
		container.SetCommentSink(client)
		container.SetUploader(client)
	}
	container.Load()

	app := ui.NewApp(container)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendJSON:
		dir := cfg.Storage.Path
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(home, ".local", "share", "octaltask")
		}
		return store.NewFile(dir)
	default:
		return store.OpenSQLite(cfg.Storage.Path)
	}
}

// buildProvider picks the identity provider: the real backend when an API
// URL is configured, otherwise the local simulated one.
func buildProvider(cfg *config.Config, logger *log.Logger) identity.Provider {
	if cfg.API.URL == "" {
		return identity.NewSimulated(nil)
	}
	client := api.New(cfg.API.URL, cfg.API.Token, time.Duration(cfg.API.TimeoutSeconds)*time.Second, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return identity.NewRemote(ctx, client, cfg.API.Token, logger)
}
