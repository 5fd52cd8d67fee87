package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zero/internal/config"
	"github.com/vovakirdan/zero/internal/registry"
	"github.com/vovakirdan/zero/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var capturesCmd = &cobra.Command{
	Use:   "captures [scene]",
	Short: "Show recorded captures",
	Long: `Display the most recent captures, optionally for one scene.

With --clear, delete the capture records of the scene. Image files are
left on disk.

Examples:
  zero captures
  zero captures orbit --limit 5
  zero captures orbit --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCaptures,
}

func init() {
	capturesCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of captures to show")
	capturesCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the scene's capture records")
}

func runCaptures(_ *cobra.Command, args []string) {
	sceneID := ""
	if len(args) > 0 {
		sceneID = args[0]
		if !registry.Exists(sceneID) {
			fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
			fmt.Fprintln(os.Stderr, "Run 'zero list' to see available scenes.")
			os.Exit(1)
		}
	}
	if flagClear && sceneID == "" {
		fail("--clear needs a scene")
	}

	cfg := loadConfig(config.Flags{})

	store, err := storage.Open(cfg.Storage.DB)
	if err != nil {
		fail("opening captures database: %v", err)
	}
	onExit(func() { store.Close() })

	if flagClear {
		n, err := store.ClearCaptures(sceneID)
		if err != nil {
			fail("clearing captures: %v", err)
		}
		fmt.Printf("Deleted %d capture records for %s\n", n, sceneID)
		return
	}

	var captures []storage.Capture
	if sceneID == "" {
		captures, err = store.RecentCaptures(flagLimit)
	} else {
		captures, err = store.CapturesForScene(sceneID, flagLimit)
	}
	if err != nil {
		fail("retrieving captures: %v", err)
	}

	title := "all scenes"
	if sceneID != "" {
		title = sceneID
	}
	fmt.Printf("Captures - %s\n", title)
	fmt.Println()

	if len(captures) == 0 {
		fmt.Println("No captures recorded yet.")
		fmt.Println()
		fmt.Println("Press Ctrl+S in 'zero view' or run 'zero render <scene>'.")
		return
	}

	fmt.Printf("  %-8s  %-16s  %-8s  %-6s  %-12s  %s\n", "ID", "Date", "Scene", "Format", "Size", "Path")
	fmt.Printf("  %-8s  %-16s  %-8s  %-6s  %-12s  %s\n", "--", "----", "-----", "------", "----", "----")
	for _, c := range captures {
		fmt.Printf("  %-8s  %-16s  %-8s  %-6s  %-12s  %s\n",
			c.ID[:min(8, len(c.ID))],
			c.CreatedAt.Format("2006-01-02 15:04"),
			c.SceneID,
			c.Format,
			fmt.Sprintf("%dx%d x%d", c.Width, c.Height, c.Scale),
			c.Path,
		)
	}

	// Per-scene totals
	if stats, err := store.AllSceneStats(); err == nil && sceneID == "" {
		fmt.Println()
		for _, s := range registry.List() {
			if st, ok := stats[s.ID]; ok {
				fmt.Printf("  %-8s  %d captures, %d bytes\n", s.ID, st.Captures, st.TotalBytes)
			}
		}
	}
}
