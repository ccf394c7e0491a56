package cmd

import "github.com/spf13/cobra"

var decodeOutput string

var decodeCmd = &cobra.Command{
	Use:     "decode [file]",
	Aliases: []string{"d"},
	Short:   "Convert TOON to JSON",
	Long: `Read a TOON document and write its JSON rendering.

Reads from the given file, or stdin if omitted or "-". Writes to stdout
unless --output is given.`,
	GroupID: "convert",
	Args:    cobra.MaximumNArgs(1),
	Example: `  toon decode data.toon
  cat data.toon | toon decode
  toon decode data.toon --output data.json --expand-paths safe`,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "-", "output file, or - for stdout")
}

func runDecode(cmd *cobra.Command, args []string) error {
	input := "-"
	if len(args) == 1 {
		input = args[0]
	}
	cfg, err := loadResolvedConfig(cmd.Context())
	if err != nil {
		return err
	}
	return NewDecodeCommand(input, decodeOutput, cfg).Execute(cmd.Context())
}
