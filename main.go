package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"tilechat/chat"
	"tilechat/config"
	"tilechat/provider"
	"tilechat/storage"
	"tilechat/tile"
	"tilechat/tool"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	config.InitDebugLog(cfg.DataDir())

	notes, err := storage.NewNoteStore(cfg.DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening note store: %v\n", err)
		os.Exit(1)
	}
	defer notes.Close()

	tiles := tile.NewService()
	tiles.OnTileRequested(func(t tile.Tile) {
		fmt.Printf("  [tile] %s\n", t.Describe())
	})
	tiles.Request(tile.NewWelcomeTile())

	tools := tool.NewService(tiles, notes)

	local := provider.NewOllamaProvider(cfg.OllamaHost)

	var hosted chat.Provider
	if cfg.OpenAIAPIKey != "" {
		hosted, err = provider.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating OpenAI provider: %v\n", err)
			os.Exit(1)
		}
	}

	history := chat.NewHistory(chat.ReinforcePolicy{
		After: cfg.ReinforceAfter,
		Every: cfg.ReinforceEvery,
	})
	manager := chat.NewManager(history, tools, tiles, local, hosted, chat.ManagerConfig{
		DefaultModel:  cfg.DefaultModel,
		HostedMarkers: cfg.ModelMarkers,
	})

	fmt.Printf("tilechat %s (model %s). Type a message, /quit to exit.\n", Version, cfg.DefaultModel)

	chatID := uuid.New().String()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		answer, err := manager.Send(context.Background(), chatID, line, "")
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Main] turn failed: %v", err)
			}
			fmt.Println("Something went wrong while talking to the model. Please try again.")
			continue
		}
		fmt.Println(answer)
	}
}
