// Package cli implements the transparencyctl command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"transparency/internal/config"
	"transparency/internal/logging"
	"transparency/internal/model"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

const defaultConfigName = ".transparency.yaml"

type options struct {
	cfgFile  string
	logLevel string
	cfg      *config.Config
}

// NewRootCmd builds the transparencyctl command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "transparencyctl",
		Short: "Score product disclosures and render transparency reports.",
		Long: `transparencyctl scores product data with the same rubric as the API,
lists the follow-up questions for a category, renders PDF or Markdown reports
and serves the scoring tools over MCP.`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig()
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/"+defaultConfigName+")")
	root.PersistentFlags().StringVarP(&opts.logLevel, "loglevel", "l", "", "Set log level. Available: debug, info, warn, error, fatal")

	root.AddCommand(
		newScoreCmd(opts),
		newQuestionsCmd(opts),
		newReportCmd(opts),
		newMCPCmd(opts),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig reads the config file and environment
func (o *options) initConfig() error {
	path := o.cfgFile
	if path == "" {
		home, err := homedir.Dir()
		if err == nil {
			candidate := filepath.Join(home, defaultConfigName)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	o.cfg = cfg

	level := cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	// Logs go to stderr so stdout stays clean for output and MCP framing
	logging.Log.SetOutput(os.Stderr)
	return logging.SetLevel(level)
}

// readProduct loads product JSON from a file, or stdin when path is "-"
func readProduct(cmd *cobra.Command, path string) (model.ProductData, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return model.ProductData{}, err
		}
		defer f.Close()
		r = f
	}

	var data model.ProductData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return model.ProductData{}, fmt.Errorf("could not parse product JSON: %w", err)
	}
	return data, nil
}
