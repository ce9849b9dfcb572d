package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/tagkit/internal/config"
	"github.com/rcliao/tagkit/internal/errors"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long:  "Write the default configuration as TOML to --config, $TAGKIT_CONFIG or ~/.tagkit/config.toml.",
		// a broken config must not stop init from replacing it
		PersistentPreRun: func(cmd *cobra.Command, args []string) { setup(false) },
		Run:              runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Run:   runConfigShow,
	}

	configCmd.AddCommand(initCmd, showCmd)
	RootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	force, _ := cmd.Flags().GetBool("force")

	path := configPath
	if path == "" {
		path = os.Getenv(config.EnvPrefix + "_CONFIG")
	}
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		exitErr("config init", errors.WithHint(
			errors.NewInvalidRequestError("%s already exists", path), "pass --force to overwrite it"))
	}
	if err := config.Default().WriteFile(path); err != nil {
		exitErr("config init", err)
	}

	printOut(cmd, map[string]any{"ok": true, "path": path}, func(w io.Writer) {
		fmt.Fprintf(w, "wrote %s\n", path)
	})
}

func runConfigShow(cmd *cobra.Command, args []string) {
	if formatFlag != "text" {
		printOut(cmd, cfg, nil)
		return
	}
	b, err := cfg.Encode()
	if err != nil {
		exitErr("config show", err)
	}
	cmd.OutOrStdout().Write(b)
}
