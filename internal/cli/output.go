package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
	"github.com/rcliao/tagkit/internal/tagging"
)

// printOut writes v in the --format encoding. Text output is left to text.
func printOut(cmd *cobra.Command, v any, text func(w io.Writer)) {
	w := cmd.OutOrStdout()
	switch formatFlag {
	case "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			exitErr("encode json", err)
		}
		fmt.Fprintln(w, string(b))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			exitErr("encode yaml", err)
		}
		enc.Close()
	default:
		text(w)
	}
}

func printTags(cmd *cobra.Command, tags []model.Tag) {
	printOut(cmd, orEmpty(tags), func(w io.Writer) {
		for _, t := range tags {
			fmt.Fprintln(w, tagging.FormatTag(t))
		}
	})
}

func printCounts(cmd *cobra.Command, counts []model.TagCount) {
	printOut(cmd, orEmpty(counts), func(w io.Writer) {
		for _, c := range counts {
			fmt.Fprintf(w, "%d\t%s\n", c.Count, tagging.FormatTag(c.Tag))
		}
	})
}

func printObjects(cmd *cobra.Command, objs []model.ObjectRef) {
	printOut(cmd, orEmpty(objs), func(w io.Writer) {
		for _, o := range objs {
			fmt.Fprintf(w, "%s/%s\n", o.Type, o.ID)
		}
	})
}

// orEmpty keeps empty results encoded as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// readInput joins the positional args, or reads piped stdin when there are
// none.
func readInput(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		return ""
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}
	return strings.TrimSpace(string(b))
}

func requireInput(what string, args []string) string {
	input := readInput(args)
	if strings.TrimSpace(input) == "" {
		exitErr(what, errors.WithHint(
			errors.NewInvalidRequestError("a tag expression is required"),
			"pass it as arguments or pipe it on stdin"))
	}
	return input
}
