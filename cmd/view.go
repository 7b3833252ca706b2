package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kamusis/tagsheet/internal/session"
)

var viewCmd = &cobra.Command{
	Use:   "view <file>...",
	Short: "Print the merged table of one or more files",
	Long: `Import the files into a throwaway session and print the table.

Examples:
  tagsheet view jan.csv feb.xlsx
  tagsheet view jan.csv --sort Amount --desc
  tagsheet view jan.csv --find "coffee"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runView,
}

var (
	flagSortColumn string
	flagSortDesc   bool
	flagFind       string
)

func init() {
	viewCmd.Flags().StringVar(&flagSortColumn, "sort", "", "Sort by this column")
	viewCmd.Flags().BoolVar(&flagSortDesc, "desc", false, "Sort descending (with --sort)")
	viewCmd.Flags().StringVar(&flagFind, "find", "", "Only show rows matching every keyword")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s := newSession(cfg)
	ctx := cmd.Context()

	out, err := s.Dispatch(ctx, session.ImportFiles{Paths: args})
	if err != nil {
		return err
	}
	printImport(out.Import)
	for _, w := range out.Warnings {
		printWarn("", w)
	}
	if out.Import.Added == 0 {
		return nil
	}

	// Sorting toggles, so a second toggle flips to descending.
	if flagSortColumn != "" {
		out, err = s.Dispatch(ctx, session.ToggleSort{Column: flagSortColumn})
		if err != nil {
			return err
		}
		if !out.ShowTable {
			printWarn("", out.Message)
		} else if flagSortDesc {
			if _, err := s.Dispatch(ctx, session.ToggleSort{Column: flagSortColumn}); err != nil {
				return err
			}
		}
	}

	var c session.Command = session.Show{}
	if flagFind != "" {
		c = session.Find{Query: flagFind}
	}
	out, err = s.Dispatch(ctx, c)
	if err != nil {
		return err
	}
	present(s, out)
	return nil
}
