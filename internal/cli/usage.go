package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rcliao/tagkit/internal/model"
	"github.com/rcliao/tagkit/internal/store"
	"github.com/rcliao/tagkit/internal/tagging"
)

func init() {
	usageCmd := &cobra.Command{
		Use:   "usage",
		Short: "Count how many objects carry each tag",
		Run:   runUsage,
	}
	usageCmd.Flags().StringP("type", "t", "", "Only count objects of this type")
	usageCmd.Flags().IntP("min-count", "m", 0, "Only tags used at least this often")

	cloudCmd := &cobra.Command{
		Use:   "cloud",
		Short: "Show tag usage as a weighted tag cloud",
		Run:   runCloud,
	}
	cloudCmd.Flags().StringP("type", "t", "", "Only count objects of this type")
	cloudCmd.Flags().IntP("min-count", "m", 0, "Only tags used at least this often")
	cloudCmd.Flags().IntP("steps", "s", 0, "Number of font sizes (default: cloud.steps)")
	cloudCmd.Flags().String("distribution", "", "logarithmic or linear (default: cloud.distribution)")

	RootCmd.AddCommand(usageCmd, cloudCmd)
}

func runUsage(cmd *cobra.Command, args []string) {
	typ, _ := cmd.Flags().GetString("type")
	minCount, _ := cmd.Flags().GetInt("min-count")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	counts, err := s.Usage(cmd.Context(), store.UsageParams{ObjectType: typ, MinCount: minCount})
	if err != nil {
		exitErr("usage", err)
	}
	printCounts(cmd, counts)
}

func runCloud(cmd *cobra.Command, args []string) {
	typ, _ := cmd.Flags().GetString("type")
	minCount, _ := cmd.Flags().GetInt("min-count")
	steps, _ := cmd.Flags().GetInt("steps")
	distName, _ := cmd.Flags().GetString("distribution")

	if steps <= 0 {
		steps = cfg.Cloud.Steps
	}
	dist, err := cfg.Distribution()
	if distName != "" {
		dist, err = tagging.ParseDistribution(distName)
	}
	if err != nil {
		exitErr("cloud", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	cloud, err := s.Cloud(cmd.Context(), store.CloudParams{
		ObjectType:   typ,
		MinCount:     minCount,
		Steps:        steps,
		Distribution: dist,
	})
	if err != nil {
		exitErr("cloud", err)
	}
	printOut(cmd, orEmpty(cloud), func(w io.Writer) {
		writeCloud(w, cloud, steps)
	})
}

// cloudColors runs from the smallest bucket to the largest.
var cloudColors = []func(a ...any) string{
	pterm.Gray, pterm.Cyan, pterm.LightCyan, pterm.Green, pterm.LightGreen, pterm.Yellow, pterm.LightYellow, pterm.LightMagenta,
}

func writeCloud(w io.Writer, cloud []model.TagCount, steps int) {
	words := make([]string, 0, len(cloud))
	for _, c := range cloud {
		i := (c.FontSize - 1) * (len(cloudColors) - 1) / max(steps-1, 1)
		color := cloudColors[min(max(i, 0), len(cloudColors)-1)]
		words = append(words, color(tagging.FormatTag(c.Tag))+pterm.Gray(fmt.Sprintf("(%d)", c.Count)))
	}
	fmt.Fprintln(w, strings.Join(words, " "))
}
