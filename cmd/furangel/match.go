package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chin-tech/furangel-invoices/internal/cli"
	"github.com/chin-tech/furangel-invoices/internal/match"
	"github.com/chin-tech/furangel-invoices/internal/reconcile"
)

func matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <shelter-export.csv>",
		Short: "Match stored charges against a shelter animal export",
		Long: `Resolve each stored charge's animal name against the shelter
management export, windowed by each animal's stay dates. Charges that
cannot be resolved to exactly one animal are left for 'correct'.`,
		Args: cobra.ExactArgs(1),
		RunE: runMatch,
	}
}

func runMatch(cmd *cobra.Command, args []string) error {
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
	if len(charges) == 0 {
		fmt.Println(cli.FormatWarning("No stored charges. Run 'process' first."))
		return nil
	}

	match.Apply(charges, records)

	if err := store.ReplaceCharges(ctx, charges); err != nil {
		return err
	}

	unresolved := len(reconcile.Unresolved(charges))
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Matched %d of %d charges against %d shelter records",
		len(charges)-unresolved, len(charges), len(records))))
	if unresolved > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d charges unresolved. Run 'correct' to review them.", unresolved)))
	}
	return nil
}
