// Package cli implements the tagkit CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/tagkit/internal/config"
	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/logger"
	"github.com/rcliao/tagkit/internal/model"
	"github.com/rcliao/tagkit/internal/store"
	"github.com/rcliao/tagkit/internal/tagging"
)

var (
	dbPath     string
	configPath string
	formatFlag string
	verbose    bool
	logJSON    bool

	cfg = config.Default()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "tagkit",
	Short: "Structured tags for anything",
	Long: "Parse, validate and store namespace:name=value tags on arbitrary objects.\n" +
		"SQLite-backed, single binary.",
	SilenceUsage:      true,
	PersistentPreRun:  func(cmd *cobra.Command, args []string) { setup(true) },
	PersistentPostRun: func(cmd *cobra.Command, args []string) { logger.Sync() },
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&dbPath, "db", "d", "", "Database path (default: database.path from config, ~/.tagkit/tags.db)")
	flags.StringVarP(&configPath, "config", "c", "", "Config file (default: $TAGKIT_CONFIG or ~/.tagkit/config.toml)")
	flags.StringVarP(&formatFlag, "format", "f", "text", "Output format: json, yaml or text")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Debug logging on stderr")
	flags.BoolVar(&logJSON, "log-json", false, "Log as JSON lines")
}

// setup loads the config and installs the logger. Commands that must work
// with a broken config pass loadConfig=false.
func setup(loadConfig bool) {
	if loadConfig {
		loaded, err := config.Load(configPath)
		if err != nil {
			exitErr("load config", err)
		}
		cfg = loaded
	}
	if err := logger.Initialize(logger.Options{
		JSON:    logJSON || cfg.Log.JSON,
		Verbose: verbose || cfg.Log.Verbose,
	}); err != nil {
		exitErr("init logger", err)
	}
	logger.Logger.Debugw("config loaded", "config", configPath, "db", getDBPath())

	switch formatFlag {
	case "json", "yaml", "text":
	default:
		exitErr("format", errors.WithHint(
			errors.NewInvalidRequestError("unknown output format %q", formatFlag),
			"use json, yaml or text"))
	}
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.Database.Path
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func updateOptions(cmd *cobra.Command) store.UpdateOptions {
	return store.UpdateOptions{
		DefaultNamespace: defaultNamespace(cmd),
		Scope:            scope(cmd),
		ForceLowercase:   cfg.Tagging.ForceLowercase,
		Limits:           cfg.Limits(),
	}
}

func resolveOptions(cmd *cobra.Command) tagging.ResolveOptions {
	return tagging.ResolveOptions{
		Wildcard:         cfg.Tagging.Wildcard,
		DefaultNamespace: defaultNamespace(cmd),
	}
}

// defaultNamespace prefers --default-ns over tagging.default_namespace.
func defaultNamespace(cmd *cobra.Command) string {
	if f := cmd.Flags().Lookup("default-ns"); f != nil && f.Changed {
		return f.Value.String()
	}
	return cfg.Tagging.DefaultNamespace
}

func scope(cmd *cobra.Command) store.Scope {
	var sc store.Scope
	if cmd.Flags().Lookup("only-ns") != nil {
		sc.Namespaces, _ = cmd.Flags().GetStringSlice("only-ns")
		sc.ExcludeNamespaces, _ = cmd.Flags().GetStringSlice("exclude-ns")
	}
	return sc
}

func addObjectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "", "Object type (required)")
	cmd.Flags().StringP("id", "i", "", "Object id (required)")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("id")
}

func addScopeFlags(cmd *cobra.Command) {
	cmd.Flags().String("default-ns", "", "Namespace for tags without one")
	cmd.Flags().StringSlice("only-ns", nil, "Only touch tags in these namespaces")
	cmd.Flags().StringSlice("exclude-ns", nil, "Leave tags in these namespaces alone")
}

func objectRef(cmd *cobra.Command) model.ObjectRef {
	typ, _ := cmd.Flags().GetString("type")
	id, _ := cmd.Flags().GetString("id")
	return model.ObjectRef{Type: typ, ID: id}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
	}
	logger.Sync()
	os.Exit(1)
}
