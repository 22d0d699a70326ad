package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"giffer/config"
	"giffer/logger"
	"giffer/plugins/giphy"
	"giffer/plugins/tenor"
	"giffer/scrape"
	"giffer/search"
	"giffer/ui"

	_ "github.com/joho/godotenv/autoload"
)

var log = logger.New("main")

func main() {
	cfg := config.FromEnv()

	search.RegisterPlugin(giphy.New(cfg, scrape.NewScraper()))
	search.RegisterPlugin(tenor.New(cfg))

	// Check for command-line arguments
	if len(os.Args) > 1 {
		handleCommandLineArgs(cfg)
		return
	}

	// Normal GUI mode
	log.Info().Msg("Starting Giffer...")
	app := ui.NewMainWindow(cfg, search.NewManager())
	app.ShowAndRun()
}

// handleCommandLineArgs processes command-line arguments
func handleCommandLineArgs(cfg config.Config) {
	args := os.Args[1:]

	switch args[0] {
	case "-search", "--search":
		if len(args) < 2 {
			fmt.Println("Error: Search query required")
			showUsage()
			return
		}
		limit := cfg.Limit
		if len(args) > 3 && (args[2] == "-limit" || args[2] == "--limit") {
			if n, err := strconv.Atoi(args[3]); err == nil && n >= 1 {
				limit = n
			}
		}
		searchForGifs(args[1], limit)
	case "-help", "--help", "-h", "--h":
		showUsage()
	default:
		fmt.Printf("Unknown option: %s\n", args[0])
		showUsage()
	}
}

// searchForGifs runs a one-shot search and prints the results
func searchForGifs(query string, limit int) {
	searchManager := search.NewManager()

	if searchManager.Active() == nil {
		fmt.Println("No search provider configured. Set GIPHY_API_KEY or TENOR_API_KEY.")
		return
	}

	fmt.Printf("Searching for '%s'...\n", query)

	gifs, err := searchManager.Search(context.Background(), query, limit)
	if err != nil {
		fmt.Printf("Error searching for GIFs: %v\n", err)
		return
	}

	fmt.Printf("\nFound %d GIFs for '%s':\n", len(gifs), query)
	fmt.Println("==========================================")

	for i, gif := range gifs {
		fmt.Printf("%d. [%s] %s\n", i+1, gif.Source, gif.Title)
		fmt.Printf("   Preview: %s\n", gif.PreviewURL)
		if gif.Permalink != "" {
			fmt.Printf("   Link: %s\n", gif.Permalink)
		}
		fmt.Println()
	}
}

// showUsage displays command-line usage information
func showUsage() {
	fmt.Println("Giffer - Command Line Usage")
	fmt.Println("===========================")
	fmt.Println()
	fmt.Println("GUI Mode (default):")
	fmt.Println("  giffer")
	fmt.Println()
	fmt.Println("Command Line Options:")
	fmt.Println("  -search <query> [-limit N]   Search for GIFs and print the results")
	fmt.Println("  -help                        Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  giffer -search cats              # Search for cat GIFs")
	fmt.Println("  giffer -search cats -limit 3     # Only the first three results")
	fmt.Println("  giffer -help                     # Show help")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  GIPHY_API_KEY   Giphy API credential (primary provider)")
	fmt.Println("  TENOR_API_KEY   Tenor API credential (secondary provider)")
	fmt.Println("  GIFFER_LIMIT    Default result limit (default 10)")
	fmt.Println("  GIFFER_RATING   Giphy rating filter (default g)")
}
