package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [tag]",
		Short: "Remove a tag from an object",
		Long:  "Remove a single tag from an object, or every tag in scope with --all. The tags themselves are kept.",
		Run:   runRm,
	}

	addObjectFlags(cmd)
	addScopeFlags(cmd)
	cmd.Flags().Bool("all", false, "Remove every tag in scope")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	obj := objectRef(cmd)
	all, _ := cmd.Flags().GetBool("all")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	removed := 1
	if all {
		removed, err = s.ClearTags(cmd.Context(), obj, scope(cmd))
	} else {
		err = s.RemoveTag(cmd.Context(), obj, requireInput("rm", args), updateOptions(cmd))
	}
	if err != nil {
		exitErr("rm", err)
	}

	result := map[string]any{"ok": true, "type": obj.Type, "id": obj.ID, "removed": removed}
	printOut(cmd, result, func(w io.Writer) {
		fmt.Fprintf(w, "%s/%s: removed %d\n", obj.Type, obj.ID, removed)
	})
}
