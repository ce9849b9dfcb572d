package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/tagkit/internal/tagging"
)

func init() {
	setCmd := &cobra.Command{
		Use:   "set [expression]",
		Short: "Replace the tags of an object",
		Long: "Make the expression the complete set of tags of an object. Reads stdin without arguments;\n" +
			"empty input clears the tags. With --only-ns or --exclude-ns, tags outside the scope are kept.",
		Run: runSet,
	}
	addObjectFlags(setCmd)
	addScopeFlags(setCmd)

	addCmd := &cobra.Command{
		Use:   "add [tag]",
		Short: "Add a single tag to an object",
		Run:   runAdd,
	}
	addObjectFlags(addCmd)
	addCmd.Flags().String("default-ns", "", "Namespace for tags without one")

	RootCmd.AddCommand(setCmd, addCmd)
}

func runSet(cmd *cobra.Command, args []string) {
	obj := objectRef(cmd)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	tags, err := s.UpdateTags(cmd.Context(), obj, readInput(args), updateOptions(cmd))
	if err != nil {
		exitErr("set", err)
	}
	printTags(cmd, tags)
}

func runAdd(cmd *cobra.Command, args []string) {
	obj := objectRef(cmd)
	input := requireInput("add", args)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	tag, err := s.AddTag(cmd.Context(), obj, input, updateOptions(cmd))
	if err != nil {
		exitErr("add", err)
	}
	printOut(cmd, tag, func(w io.Writer) {
		fmt.Fprintf(w, "%s/%s +%s\n", obj.Type, obj.ID, tagging.FormatTag(*tag))
	})
}
