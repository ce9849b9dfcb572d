package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/logger"
	"github.com/rcliao/tagkit/internal/tagging"
)

func init() {
	cmd := &cobra.Command{
		Use:   "resolve [expression]...",
		Short: "List the stored tags an expression refers to",
		Long: "Resolve tag expressions, or tag ids with --ids, to stored tags.\n" +
			"With tagging.wildcard set, a wildcard part matches any namespace, name or value.",
		Run: runResolve,
	}

	cmd.Flags().Bool("ids", false, "Arguments are tag ids")
	cmd.Flags().String("default-ns", "", "Namespace for tags without one")
	cmd.Flags().StringP("wildcard", "w", "", "Wildcard part (default: tagging.wildcard)")

	RootCmd.AddCommand(cmd)
}

func runResolve(cmd *cobra.Command, args []string) {
	ref, err := referenceFromArgs(cmd, args)
	if err != nil {
		exitErr("resolve", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	tags, err := s.ResolveTags(cmd.Context(), ref, resolveFlags(cmd))
	if err != nil {
		exitErr("resolve", err)
	}
	printTags(cmd, tags)
}

// referenceFromArgs builds a reference from tag expressions, or from tag
// ids when --ids is set.
func referenceFromArgs(cmd *cobra.Command, args []string) (tagging.Reference, error) {
	if ids, _ := cmd.Flags().GetBool("ids"); ids {
		parsed := make([]int64, 0, len(args))
		for _, a := range args {
			id, err := strconv.ParseInt(a, 10, 64)
			if err != nil {
				return nil, errors.WithHint(
					errors.NewInvalidRequestError("tag id %q", a), "tag ids are integers")
			}
			parsed = append(parsed, id)
		}
		return tagging.NewReference(parsed)
	}
	if len(args) == 0 {
		return tagging.NewReference(requireInput("resolve", args))
	}
	return tagging.NewReference(args)
}

func resolveFlags(cmd *cobra.Command) tagging.ResolveOptions {
	opts := resolveOptions(cmd)
	if f := cmd.Flags().Lookup("wildcard"); f != nil && f.Changed {
		opts.Wildcard = f.Value.String()
	}
	return opts
}

// resolveArgs resolves the positional expression without touching the
// store, for commands that pass a Resolution on.
func resolveArgs(cmd *cobra.Command, args []string) tagging.Resolution {
	ref, err := referenceFromArgs(cmd, args)
	if err != nil {
		exitErr("resolve", err)
	}
	res, err := tagging.Resolve(ref, resolveFlags(cmd))
	if err != nil {
		exitErr("resolve", err)
	}
	if res.Predicate != nil {
		logger.Logger.Debugw("resolved", "predicate", res.Predicate.String())
	}
	return res
}
