package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/madstone-tech/toon/internal/adapters/config"
)

var (
	encodeOutput string
)

var encodeCmd = &cobra.Command{
	Use:     "encode [file]",
	Aliases: []string{"e"},
	Short:   "Convert JSON to TOON",
	Long: `Read a JSON document and write its TOON rendering.

Reads from the given file, or stdin if omitted or "-". Writes to stdout
unless --output is given.`,
	GroupID: "convert",
	Args:    cobra.MaximumNArgs(1),
	Example: `  toon encode data.json
  cat data.json | toon encode
  toon encode data.json --output data.toon --indent 4`,
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "-", "output file, or - for stdout")
}

func runEncode(cmd *cobra.Command, args []string) error {
	input := "-"
	if len(args) == 1 {
		input = args[0]
	}
	cfg, err := loadResolvedConfig(cmd.Context())
	if err != nil {
		return err
	}
	return NewEncodeCommand(input, encodeOutput, cfg).Execute(cmd.Context())
}

// loadResolvedConfig layers Viper's resolved values (flags > env > config
// files > defaults) onto the documented house style.
func loadResolvedConfig(ctx context.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Indent = viperGetInt("indent", cfg.Indent)
	cfg.Delimiter = viperGetString("delimiter", cfg.Delimiter)
	cfg.KeyFolding = viperGetString("key_folding", cfg.KeyFolding)
	cfg.FlattenDepth = viperGetInt("flatten_depth", cfg.FlattenDepth)
	cfg.Strict = viperGetBool("strict", cfg.Strict)
	cfg.ExpandPaths = viperGetString("expand_paths", cfg.ExpandPaths)
	cfg.LengthMarkers = viperGetBool("length_markers", cfg.LengthMarkers)
	return cfg, nil
}
