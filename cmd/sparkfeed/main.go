package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndaedxo/Social-Media-Platform/config"
	"github.com/ndaedxo/Social-Media-Platform/internal/store"
	"github.com/ndaedxo/Social-Media-Platform/internal/substrate"
	"github.com/ndaedxo/Social-Media-Platform/internal/tui"
	"github.com/ndaedxo/Social-Media-Platform/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Debug); err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sub := must(substrate.Open(cfg))

	ctx := context.Background()
	app := &tui.App{
		Identity: store.NewIdentityStore(ctx, sub),
		Posts:    store.NewPostsStore(ctx, sub),
		PageSize: cfg.Feed.PageSize,
	}

	if _, err := tea.NewProgram(tui.New(app), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "sparkfeed:", err)
		os.Exit(1)
	}
}
