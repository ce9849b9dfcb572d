package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/tagkit/internal/store"
)

func init() {
	relatedCmd := &cobra.Command{
		Use:   "related [expression]...",
		Short: "List tags used together with the given tags",
		Long:  "List the tags found on objects carrying every given tag, most frequent first.",
		Run:   runRelated,
	}
	addQueryFlags(relatedCmd)
	relatedCmd.Flags().IntP("min-count", "m", 0, "Only tags used at least this often")

	objectsCmd := &cobra.Command{
		Use:   "objects [expression]...",
		Short: "List objects carrying the given tags",
		Run:   runObjects,
	}
	addQueryFlags(objectsCmd)
	objectsCmd.Flags().Bool("any", false, "Match objects carrying any of the tags instead of all")

	similarCmd := &cobra.Command{
		Use:   "similar",
		Short: "List objects sharing the most tags with an object",
		Run:   runSimilar,
	}
	addObjectFlags(similarCmd)
	similarCmd.Flags().String("of-type", "", "Only objects of this type")
	similarCmd.Flags().IntP("limit", "l", 20, "Max results (0 for all)")

	RootCmd.AddCommand(relatedCmd, objectsCmd, similarCmd)
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "", "Only objects of this type")
	cmd.Flags().Bool("ids", false, "Arguments are tag ids")
	cmd.Flags().String("default-ns", "", "Namespace for tags without one")
	cmd.Flags().StringP("wildcard", "w", "", "Wildcard part (default: tagging.wildcard)")
}

func runRelated(cmd *cobra.Command, args []string) {
	typ, _ := cmd.Flags().GetString("type")
	minCount, _ := cmd.Flags().GetInt("min-count")
	res := resolveArgs(cmd, args)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	counts, err := s.Related(cmd.Context(), res, store.RelatedParams{ObjectType: typ, MinCount: minCount})
	if err != nil {
		exitErr("related", err)
	}
	printCounts(cmd, counts)
}

func runObjects(cmd *cobra.Command, args []string) {
	typ, _ := cmd.Flags().GetString("type")
	anyTag, _ := cmd.Flags().GetBool("any")
	res := resolveArgs(cmd, args)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	find := s.ObjectsWithAll
	if anyTag {
		find = s.ObjectsWithAny
	}
	objs, err := find(cmd.Context(), res, typ)
	if err != nil {
		exitErr("objects", err)
	}
	printObjects(cmd, objs)
}

func runSimilar(cmd *cobra.Command, args []string) {
	obj := objectRef(cmd)
	ofType, _ := cmd.Flags().GetString("of-type")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	related, err := s.RelatedObjects(cmd.Context(), obj, ofType, limit)
	if err != nil {
		exitErr("similar", err)
	}
	printOut(cmd, orEmpty(related), func(w io.Writer) {
		for _, r := range related {
			fmt.Fprintf(w, "%d\t%s/%s\n", r.Shared, r.Object.Type, r.Object.ID)
		}
	})
}
