package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contentgrid/rulegrid/internal/grid"
	"github.com/contentgrid/rulegrid/internal/types"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new rule with the next free rule id",
	RunE:  runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, closeDB, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	g, err := grid.New(grid.Options{
		Store: st,
		User:  cfg.User,
		Callbacks: grid.Callbacks{
			OnRuleCreate: func(types.RuleRecord) {},
		},
	})
	if err != nil {
		return err
	}

	rec, err := g.CreateRule()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", rec.RuleID, rec.ID)
	return nil
}
