package cmd

import (
	"fmt"
	"os"

	"github.com/agenthands/dtmkey/pkg/config"
	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/spf13/cobra"
)

// options are shared by every subcommand of one root command.
type options struct {
	configPath string
	indexDir   string
	logLevel   string

	cfg *core.Config
}

// newRootCmd builds the command tree. Each call returns an independent tree.
func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "dtmkey",
		Short: "Convert digital-twin model, element and xref keys",
		Long: `dtmkey converts the binary keys of a digital-twin property database
between their raw layouts and the web-safe base64 text used by APIs, and
maintains a local index of cross-model references.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().StringVarP(&opts.indexDir, "index-dir", "d", "", "Directory of the xref index (overrides config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	root.AddCommand(
		newShortCmd(),
		newFullCmd(),
		newSysIDCmd(),
		newXrefCmd(),
		newBatchCmd(),
		newIndexCmd(opts),
	)
	return root
}

func (o *options) load(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if o.indexDir != "" {
		cfg.Index.Dir = o.indexDir
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	core.SetLogger(logger)

	o.cfg = cfg
	return nil
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
