package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theflywheel/fixmap"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	hash       string
	verbose    bool
	jsonOut    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   "fixmapctl",
		Short: "Exercise fixmap fixed-record hash maps",
		Long: `fixmapctl runs small programs against fixmap maps: counting letters,
iterating and exporting records, comparing reference keys, and filling a map
with random keys to inspect how it grows.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML file with a [map] section")
	rootCmd.PersistentFlags().StringVar(&opts.hash, "hash", "", "Hash function: elf or xxhash (overrides the config file)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log map internals to stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Output in JSON format")

	rootCmd.AddCommand(
		newCountCmd(opts),
		newPeopleCmd(opts),
		newNamesCmd(opts),
		newFillCmd(opts),
	)
	return rootCmd
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newMap loads the shared settings, applies the sizes a subcommand needs and
// creates the map. The returned cleanup flushes the logger.
func (o *globalOptions) newMap(keySize, valueSize uint32, resolver fixmap.KeyResolver) (*fixmap.Map, func(), error) {
	cfg, err := o.mapConfig()
	if err != nil {
		return nil, nil, err
	}
	cfg.KeySize = keySize
	cfg.ValueSize = valueSize
	cfg.Resolver = resolver

	m, err := fixmap.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("could not init map: %w", err)
	}
	return m, func() {
		_ = m.Close()
		_ = cfg.Logger.Sync()
	}, nil
}

func (o *globalOptions) mapConfig() (fixmap.Config, error) {
	cfg := fixmap.Config{}
	if o.configPath != "" {
		var err error
		if cfg, err = loadConfig(o.configPath); err != nil {
			return cfg, err
		}
	}
	if o.hash != "" {
		cfg.Hash = o.hash
	}
	cfg.Logger = zap.NewNop()
	if o.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return cfg, fmt.Errorf("failed to build logger: %w", err)
		}
		cfg.Logger = logger
	}
	return cfg, nil
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
