package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/contentgrid/rulegrid/internal/core/store"
	"github.com/contentgrid/rulegrid/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import rules from a JSON file, replacing the stored collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	var records []types.RuleRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	// Backfill identities so hand-written fixtures import cleanly.
	now := time.Now()
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = types.NewRecordID()
		}
		if records[i].RuleID == "" {
			records[i].RuleID = types.GenerateRuleID(records)
		}
		if records[i].CreatedAt.IsZero() {
			records[i].CreatedAt = now
		}
		if records[i].LastModified.IsZero() {
			records[i].LastModified = now
		}
	}

	st, closeDB, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := st.Write(store.KeyRules, records); err != nil {
		return fmt.Errorf("failed to store rules: %w", err)
	}

	logger.Info("imported rules", "count", len(records), "file", args[0])
	return nil
}
