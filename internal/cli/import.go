package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/tagkit/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import tags and associations",
		Long:  "Import the JSON or YAML produced by export, from a file or stdin. Existing associations are skipped.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read import", err)
	}

	exp, err := decodeExport(data)
	if err != nil {
		exitErr("parse import", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), exp)
	if err != nil {
		exitErr("import", err)
	}

	printOut(cmd, map[string]any{"ok": true, "imported": imported}, func(w io.Writer) {
		fmt.Fprintf(w, "imported %d associations\n", imported)
	})
}

// decodeExport reads JSON, or YAML when the data is not a JSON object.
func decodeExport(data []byte) (*store.Export, error) {
	var exp store.Export
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		if err := json.Unmarshal(data, &exp); err != nil {
			return nil, err
		}
		return &exp, nil
	}
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, err
	}
	return &exp, nil
}
