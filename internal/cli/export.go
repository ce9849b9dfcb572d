package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/tagkit/internal/errors"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tags and associations",
		Long:  "Export every tag and association as JSON, or YAML with --format yaml. Filter by object type with -t.",
		Run:   runExport,
	}

	cmd.Flags().StringP("type", "t", "", "Only associations of this object type")
	cmd.Flags().StringP("out", "o", "", "Write to a file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	typ, _ := cmd.Flags().GetString("type")
	out, _ := cmd.Flags().GetString("out")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	exp, err := s.ExportAll(cmd.Context(), typ)
	if err != nil {
		exitErr("export", err)
	}

	var b []byte
	if formatFlag == "yaml" {
		b, err = yaml.Marshal(exp)
	} else {
		b, err = json.MarshalIndent(exp, "", "  ")
		b = append(b, '\n')
	}
	if err != nil {
		exitErr("encode export", err)
	}

	if out == "" {
		cmd.OutOrStdout().Write(b)
		return
	}
	if err := os.WriteFile(out, b, 0644); err != nil {
		exitErr("export", errors.Wrapf(err, "write %s", out))
	}
}
