package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"reelbot/config"
	"reelbot/task"
	"reelbot/tui"
)

func main() {
	// Load environment
	_ = godotenv.Load()

	serverURL := flag.String("url", "http://localhost:8080", "Generation server URL")
	subject := flag.String("subject", "", "Video subject")
	aspect := flag.String("aspect", string(config.AspectPortrait), "Aspect ratio (9:16, 16:9, 1:1)")
	theme := flag.String("theme", "", "Subtitle color theme")
	flag.Parse()

	if *subject == "" {
		fmt.Println("Usage: reelbot-tui -subject \"your topic\" [-url ...] [-aspect 9:16] [-theme classic_gold]")
		os.Exit(1)
	}

	m := tui.NewModel(*serverURL, task.Params{
		Subject: *subject,
		Aspect:  config.Aspect(*aspect),
		Theme:   *theme,
	})

	program := tea.NewProgram(m)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
