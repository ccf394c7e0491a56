package cmd

import "github.com/spf13/cobra"

var convertTarget string

var convertCmd = &cobra.Command{
	Use:     "convert <dir>",
	Aliases: []string{"c"},
	Short:   "Batch-convert a directory of files between JSON and TOON",
	GroupID: "convert",
	Args:    cobra.ExactArgs(1),
	Example: `  toon convert ./fixtures --to toon
  toon convert ./fixtures --to json`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertTarget, "to", "toon", "target format: toon or json")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadResolvedConfig(cmd.Context())
	if err != nil {
		return err
	}
	return NewConvertCommand(args[0], convertTarget, cfg).Execute(cmd.Context())
}
