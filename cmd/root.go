// Package cmd implements the toon CLI commands using Cobra.
package cmd

import (
	"fmt"
	"strings"

	"github.com/madstone-tech/toon/internal/adapters/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build-time version information, set via SetVersionInfo from main.go.
var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
	appBuiltBy = "unknown"
)

// Persistent flag values accessible to all subcommands.
var (
	cfgFile     string
	ProjectRoot string
	Verbose     bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "toon",
	Short: "Tabular Object Oriented Notation encoder, decoder, and formatter",
	Long: `toon converts between JSON and TOON (Tabular Object Oriented Notation),
a compact, indentation-structured text format for the JSON data model.

It encodes uniform arrays of objects as dense tables, folds and expands
dotted key paths, and validates TOON text with line/column diagnostics.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.Root())
	},
	SilenceUsage: true,
}

func init() {
	// Persistent flags available to all subcommands.
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a config file, read in place of the global XDG config")
	rootCmd.PersistentFlags().StringVarP(&ProjectRoot, "project", "p", ".", "project root directory")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "enable verbose output (env: TOON_VERBOSE)")
	rootCmd.PersistentFlags().Int("indent", 2, "spaces per indentation level")
	rootCmd.PersistentFlags().String("delimiter", "comma", "array/table delimiter: comma, tab, or pipe")
	rootCmd.PersistentFlags().Bool("strict", true, "reject ambiguous or malformed input instead of guessing")
	rootCmd.PersistentFlags().String("key-folding", "off", "encoder dotted-path key folding: off or safe")
	rootCmd.PersistentFlags().String("expand-paths", "off", "decoder dotted-path key expansion: off or safe")
	_ = viper.BindPFlag("indent", rootCmd.PersistentFlags().Lookup("indent"))
	_ = viper.BindPFlag("delimiter", rootCmd.PersistentFlags().Lookup("delimiter"))
	_ = viper.BindPFlag("strict", rootCmd.PersistentFlags().Lookup("strict"))
	_ = viper.BindPFlag("key_folding", rootCmd.PersistentFlags().Lookup("key-folding"))
	_ = viper.BindPFlag("expand_paths", rootCmd.PersistentFlags().Lookup("expand-paths"))

	// Command groups for organized help output.
	rootCmd.AddGroup(
		&cobra.Group{ID: "convert", Title: "Converting"},
		&cobra.Group{ID: "inspect", Title: "Inspecting"},
	)
}

// Execute runs the root command. This is the main entry point called from main.go.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets build-time version information from ldflags.
// Call this from main.go before Execute().
func SetVersionInfo(version, commit, date, builtBy string) {
	appVersion = version
	appCommit = commit
	appDate = date
	appBuiltBy = builtBy

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		fmt.Sprintf("toon %s (commit: %s, built: %s by %s)\n", version, commit, date, builtBy),
	)
}

// initConfig sets up Viper configuration with the full hierarchy:
// CLI flags > TOON_* env vars > project .toonrc.toml > global XDG config > defaults
func initConfig(root *cobra.Command) error {
	viper.SetConfigType("toml")

	// 1. Set built-in defaults (spec.md §6).
	viper.SetDefault("indent", 2)
	viper.SetDefault("delimiter", "comma")
	viper.SetDefault("key_folding", "off")
	viper.SetDefault("flatten_depth", 0)
	viper.SetDefault("strict", true)
	viper.SetDefault("expand_paths", "off")
	viper.SetDefault("length_markers", false)

	// 2. Read global config (lowest priority file).
	if cfgFile != "" {
		// --config flag overrides all path resolution.
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	} else {
		// Try XDG global config path.
		paths := config.NewXDGPathResolver()
		viper.SetConfigFile(paths.ConfigFile())
		_ = viper.ReadInConfig() // Silent fail if not found.
	}

	// 3. Merge project config (overrides global).
	viper.SetConfigFile(".toonrc.toml")
	_ = viper.MergeInConfig() // Silent fail if not found.

	// 4. Environment variables override config files.
	viper.SetEnvPrefix("TOON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 5. Apply custom command aliases from [aliases] config section.
	applyCustomAliases(root)

	return nil
}

// applyCustomAliases reads the [aliases] section from config and appends
// custom aliases to matching top-level commands. Config values can be a
// single string or an array of strings. Invalid entries are silently skipped.
func applyCustomAliases(root *cobra.Command) {
	aliasMap := viper.GetStringMap("aliases")
	if len(aliasMap) == 0 {
		return
	}

	commands := root.Commands()
	cmdByName := make(map[string]*cobra.Command, len(commands))
	for _, cmd := range commands {
		cmdByName[cmd.Name()] = cmd
	}

	for name, value := range aliasMap {
		cmd, ok := cmdByName[name]
		if !ok {
			continue
		}

		var aliases []string
		switch v := value.(type) {
		case string:
			aliases = []string{v}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					aliases = append(aliases, s)
				}
			}
		default:
			continue
		}

		cmd.Aliases = append(cmd.Aliases, aliases...)
	}
}
