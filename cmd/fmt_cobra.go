package cmd

import "github.com/spf13/cobra"

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:     "fmt <file>",
	Short:   "Reformat a TOON document to the configured house style",
	GroupID: "convert",
	Args:    cobra.ExactArgs(1),
	Example: `  toon fmt data.toon
  toon fmt data.toon --write
  toon fmt data.toon --indent 4 --delimiter tab`,
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "rewrite the file in place instead of printing to stdout")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cfg, err := loadResolvedConfig(cmd.Context())
	if err != nil {
		return err
	}
	return NewFmtCommand(args[0], fmtWrite, cfg).Execute(cmd.Context())
}
