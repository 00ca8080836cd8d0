package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/morozRed/skillgraph/internal/engine"
)

// ConfigName is the optional per-project config file, looked up as
// <root>/.skillgraph.yaml.
const ConfigName = ".skillgraph"

// LoadOptions merges the engine defaults, the project config file, and
// any command-line flag overrides, in that precedence order.
func LoadOptions(root string, cmd *cobra.Command) (engine.Options, error) {
	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(root)

	v.SetDefault("condense_cycles", true)
	v.SetDefault("adjacency_options.include_ghost", false)
	v.SetDefault("adjacency_options.include_scripts", false)
	v.SetDefault("adjacency_options.include_cycles", false)
	v.SetDefault("dense_threshold", 0)
	v.SetDefault("density_threshold", 0.0)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return engine.Options{}, fmt.Errorf("failed to read %s.yaml: %w", ConfigName, err)
		}
	}

	if changed, err := flagOverride(cmd, "no-condense"); err != nil {
		return engine.Options{}, err
	} else if changed {
		v.Set("condense_cycles", false)
	}
	for flag, key := range map[string]string{
		"include-ghosts":  "adjacency_options.include_ghost",
		"include-scripts": "adjacency_options.include_scripts",
		"include-cycles":  "adjacency_options.include_cycles",
	} {
		changed, err := flagOverride(cmd, flag)
		if err != nil {
			return engine.Options{}, err
		}
		if changed {
			v.Set(key, true)
		}
	}

	opts := engine.DefaultOptions()
	if err := v.Unmarshal(&opts); err != nil {
		return engine.Options{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return opts, nil
}

// flagOverride reports whether a boolean flag was both set and true on
// this invocation.
func flagOverride(cmd *cobra.Command, name string) (bool, error) {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return false, nil
	}
	return boolFlag(cmd, name)
}
