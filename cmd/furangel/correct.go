package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chin-tech/furangel-invoices/internal/cli"
	"github.com/chin-tech/furangel-invoices/internal/reconcile"
)

func correctCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "correct <shelter-export.csv>",
		Short: "Interactively resolve charges the matcher could not",
		Long: `Walk through every charge group the matcher left unresolved,
showing the closest shelter records as candidates. A group can be
assigned to one animal, split evenly across several, or skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runCorrect,
	}
}

func runCorrect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := loadShelterRecords(args[0])
	if err != nil {
		return err
	}

	charges, err := store.ListCharges(ctx)
	if err != nil {
		return err
	}

	prompter := cli.NewPrompter(nil, nil)
	corrections, err := prompter.ReviewUnresolved(ctx, charges, records)
	if err != nil {
		return err
	}
	if len(corrections) == 0 {
		return nil
	}

	charges = reconcile.Apply(charges, corrections)
	if err := store.ReplaceCharges(ctx, charges); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Applied %d corrections", len(corrections))))
	return nil
}
