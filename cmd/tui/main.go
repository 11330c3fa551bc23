package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/JosephKS10/blog-backend/cmd/tui/client"
	"github.com/JosephKS10/blog-backend/cmd/tui/ui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	defaultURL := os.Getenv("BLOG_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3000"
	}
	apiURL := flag.String("api", defaultURL, "base URL of the blog API")
	flag.Parse()

	p := tea.NewProgram(
		ui.NewModel(client.NewClient(*apiURL)),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
