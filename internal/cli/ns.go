package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	nsCmd := &cobra.Command{
		Use:   "ns",
		Short: "Namespace management",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all namespaces",
		Run:   runNSList,
	}

	nsCmd.AddCommand(listCmd)
	RootCmd.AddCommand(nsCmd)
}

func runNSList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rows, err := s.ListNamespaces(cmd.Context())
	if err != nil {
		exitErr("list namespaces", err)
	}

	printOut(cmd, orEmpty(rows), func(w io.Writer) {
		for _, ns := range rows {
			name := ns.Namespace
			if name == "" {
				name = "(none)"
			}
			fmt.Fprintf(w, "%s\t%d tags\t%d items\n", name, ns.Tags, ns.Items)
		}
	})
}
