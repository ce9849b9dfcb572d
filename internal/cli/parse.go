package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
	"github.com/rcliao/tagkit/internal/tagging"
)

func init() {
	parseCmd := &cobra.Command{
		Use:   "parse [expression]",
		Short: "Split a tag expression into tag strings",
		Long:  "Parse a tag expression into its sorted, de-duplicated tag strings. Reads stdin without arguments.",
		Run:   runParse,
	}
	parseCmd.Flags().String("default-ns", "", "Namespace for tags without one")
	parseCmd.Flags().StringSlice("keep-quotes", nil, "Quoted parts that keep their quotes")

	editCmd := &cobra.Command{
		Use:   "edit [expression]",
		Short: "Normalize a tag expression into its editable form",
		Run:   runEdit,
	}
	addScopeFlags(editCmd)

	partsCmd := &cobra.Command{
		Use:   "parts [tag]...",
		Short: "Split tag strings into namespace, name and value",
		Args:  cobra.MinimumNArgs(1),
		Run:   runParts,
	}
	partsCmd.Flags().StringSlice("keep-quotes", nil, "Quoted parts that keep their quotes")

	checkCmd := &cobra.Command{
		Use:   "check [expression]",
		Short: "Validate tag lengths against the configured limits",
		Run:   runCheck,
	}
	checkCmd.Flags().String("default-ns", "", "Namespace for tags without one")

	RootCmd.AddCommand(parseCmd, editCmd, partsCmd, checkCmd)
}

func runParse(cmd *cobra.Command, args []string) {
	keep, _ := cmd.Flags().GetStringSlice("keep-quotes")
	tags := tagging.ParseInput(readInput(args), tagging.ParseOptions{
		DefaultNamespace: defaultNamespace(cmd),
		KeepQuotes:       keep,
	})
	printOut(cmd, orEmpty(tags), func(w io.Writer) {
		for _, t := range tags {
			fmt.Fprintln(w, t)
		}
	})
}

func runEdit(cmd *cobra.Command, args []string) {
	sc := scope(cmd)
	edit := tagging.EditStringFromInput(readInput(args), tagging.EditOptions{
		DefaultNamespace:  defaultNamespace(cmd),
		FilterNamespaces:  sc.Namespaces,
		ExcludeNamespaces: sc.ExcludeNamespaces,
	})
	printOut(cmd, map[string]string{"edit": edit}, func(w io.Writer) {
		fmt.Fprintln(w, edit)
	})
}

func runParts(cmd *cobra.Command, args []string) {
	keep, _ := cmd.Flags().GetStringSlice("keep-quotes")
	tags := make([]model.Tag, 0, len(args))
	for _, arg := range args {
		t, err := tagging.GetTagParts(arg, tagging.ParseOptions{KeepQuotes: keep})
		if err != nil {
			exitErr("parts", errors.WithHint(err, `quote parts containing ':' or '=' like "a:b"`))
		}
		tags = append(tags, t)
	}
	printOut(cmd, tags, func(w io.Writer) {
		for _, t := range tags {
			fmt.Fprintf(w, "namespace=%q name=%q value=%q\n", t.Namespace, t.Name, t.Value)
		}
	})
}

func runCheck(cmd *cobra.Command, args []string) {
	input := requireInput("check", args)
	limits := cfg.Limits()
	opts := tagging.ParseOptions{DefaultNamespace: defaultNamespace(cmd)}
	if err := tagging.CheckInput(input, opts, limits); err != nil {
		if msg := tagging.ValidationMessage(err); msg != err.Error() {
			err = errors.WithHint(err, msg)
		}
		exitErr("check", err)
	}

	n := len(tagging.ParseInput(input, opts))
	printOut(cmd, map[string]any{"ok": true, "tags": n, "limits": limits}, func(w io.Writer) {
		fmt.Fprintf(w, "ok: %d tags within limits\n", n)
	})
}
