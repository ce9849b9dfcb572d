package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the tags of an object",
		Run:   runGet,
	}

	addObjectFlags(cmd)
	addScopeFlags(cmd)
	cmd.Flags().Bool("edit", false, "Print the editable tag string instead of a list")

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	obj := objectRef(cmd)
	edit, _ := cmd.Flags().GetBool("edit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if edit {
		str, err := s.EditStringForObject(cmd.Context(), obj, updateOptions(cmd))
		if err != nil {
			exitErr("get", err)
		}
		printOut(cmd, map[string]string{"edit": str}, func(w io.Writer) {
			fmt.Fprintln(w, str)
		})
		return
	}

	tags, err := s.TagsForObject(cmd.Context(), obj, scope(cmd))
	if err != nil {
		exitErr("get", err)
	}
	printTags(cmd, tags)
}
