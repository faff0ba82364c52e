package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fracture/internal/registry"
	"github.com/vovakirdan/fracture/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs",
	Long: `Display the best runs for a mode, or a summary of every mode when no
mode is given.

Examples:
  fracture scores
  fracture scores lightning --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		return
	}

	mode := args[0]
	game, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'fracture list' to see available modes.")
		os.Exit(1)
	}

	runs, err := store.TopRuns(mode, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'fracture play %s' to set the first high score!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-16s  %s\n", "Rank", "Score", "Lines", "Chain", "Date", "Run")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-16s  %s\n", "----", "-----", "-----", "-----", "----", "---")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-16s  %s\n",
			i+1, r.Score, r.Lines, r.MaxChain, r.CreatedAt.Format("2006-01-02 15:04"), r.ID[:8])
	}
}

func printSummary(store *storage.Store) error {
	stats, err := store.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("  %-12s  %-5s  %-8s  %-8s  %-6s  %s\n", "Mode", "Runs", "Best", "Average", "Chain", "Last played")
	for _, info := range registry.List() {
		s, ok := stats[info.ID]
		if !ok {
			fmt.Printf("  %-12s  %-5d\n", info.ID, 0)
			continue
		}
		fmt.Printf("  %-12s  %-5d  %-8d  %-8.1f  %-6d  %s\n",
			info.ID, s.Runs, s.HighScore, s.AvgScore, s.BestChain, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
