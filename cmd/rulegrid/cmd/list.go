package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/contentgrid/rulegrid/internal/grid"
	"github.com/contentgrid/rulegrid/internal/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List rules through the grid pipeline",
	Long: `List applies column filters and pagination exactly as the grid does
and prints the resulting page window.

Filters take the form column=value. Text columns match case-insensitive
substrings, multi-select columns take comma-separated values, and boolean
columns take true or false.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringArray("filter", nil, "column filter, column=value (repeatable)")
	listCmd.Flags().Int("page", 1, "page number")
	listCmd.Flags().Int("page-size", 0, "rows per page")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, closeDB, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	g, err := grid.New(grid.Options{Store: st, User: cfg.User, PageSize: cfg.PageSize})
	if err != nil {
		return err
	}

	filters, _ := cmd.Flags().GetStringArray("filter")
	for _, f := range filters {
		if err := applyFilter(g, f); err != nil {
			return err
		}
	}

	if size, _ := cmd.Flags().GetInt("page-size"); size != 0 {
		if err := g.SetPageSize(size); err != nil {
			return err
		}
	}
	if page, _ := cmd.Flags().GetInt("page"); page > 1 {
		if !g.JumpToPage(page) {
			return fmt.Errorf("page %d out of range", page)
		}
	}

	view := g.View()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RULE ID\tEFFECTIVE\tVERSION\tBENEFIT TYPE\tBUSINESS AREA\tEN STATUS\tES STATUS\tPUBLISHED")
	for _, r := range view.Window {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.RuleID,
			grid.FormatDateForDisplay(r.EffectiveDate),
			r.Version,
			r.BenefitType,
			r.BusinessArea,
			grid.NormalizeStatus(r.EnglishStatus),
			grid.NormalizeStatus(r.SpanishStatus),
			yesNo(r.Published),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), view.Summary)
	return nil
}

// applyFilter parses column=value and routes it to the filter kind the
// column supports.
func applyFilter(g *grid.Grid, spec string) error {
	parts := strings.SplitN(spec, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid filter %q, expected column=value", spec)
	}
	key := types.FieldKey(parts[0])
	value := parts[1]

	d, ok := types.FieldByKey(key)
	if !ok {
		return fmt.Errorf("unknown column %q", key)
	}

	switch d.Filter {
	case types.FilterText:
		return g.SetTextFilter(key, value)
	case types.FilterValues:
		return g.SetValuesFilter(key, strings.Split(value, ","))
	case types.FilterTri:
		switch strings.ToLower(value) {
		case "true", "yes":
			return g.SetFlagFilter(key, types.TriTrue)
		case "false", "no":
			return g.SetFlagFilter(key, types.TriFalse)
		default:
			return fmt.Errorf("column %q takes true or false, got %q", key, value)
		}
	default:
		return fmt.Errorf("column %q is not filterable", key)
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
