package cmd

import "github.com/spf13/cobra"

var validateExitCode bool

var validateCmd = &cobra.Command{
	Use:     "validate <file>...",
	Aliases: []string{"val"},
	Short:   "Validate TOON documents",
	Long: `Check one or more TOON files for structural and lexical errors,
reporting line and column for each diagnostic.`,
	GroupID: "inspect",
	Args:    cobra.MinimumNArgs(1),
	Example: `  toon validate data.toon
  toon validate *.toon --exit-code    # For CI/CD pipelines`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateExitCode, "exit-code", false, "exit with non-zero status on validation failures")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadResolvedConfig(cmd.Context())
	if err != nil {
		return err
	}
	return NewValidateCommand(args, validateExitCode, cfg).Execute(cmd.Context())
}
