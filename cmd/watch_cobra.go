package cmd

import "github.com/spf13/cobra"

var watchDebounce int

var watchCmd = &cobra.Command{
	Use:     "watch <file>",
	Aliases: []string{"w"},
	Short:   "Watch a TOON file and re-validate it on change",
	GroupID: "inspect",
	Args:    cobra.ExactArgs(1),
	Example: `  toon watch data.toon
  toon watch data.toon --debounce 1000`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 500, "debounce delay in milliseconds")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadResolvedConfig(cmd.Context())
	if err != nil {
		return err
	}
	return NewWatchCommand(args[0], cfg).WithDebounce(watchDebounce).Execute(cmd.Context())
}
