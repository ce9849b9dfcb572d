package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), getDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	printOut(cmd, stats, func(w io.Writer) {
		fmt.Fprintf(w, "db:       %s (%d bytes)\n", stats.DBPath, stats.DBSizeBytes)
		fmt.Fprintf(w, "tags:     %d (%d in use)\n", stats.TotalTags, stats.UsedTags)
		fmt.Fprintf(w, "items:    %d on %d objects\n", stats.TotalItems, stats.TotalObjects)
		fmt.Fprintf(w, "namespaces: %d\n", len(stats.Namespaces))
	})
}
