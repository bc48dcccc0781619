package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chin-tech/furangel-invoices/internal/cli"
	"github.com/chin-tech/furangel-invoices/internal/export"
	"github.com/chin-tech/furangel-invoices/internal/reconcile"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <output.csv>",
		Short: "Write the cost upload CSV for the shelter management system",
		Long: `Export all stored charges as the cost CSV the shelter management
system imports. Charges still unresolved are written with the
ERROR_CODE sentinel so they are visible in the upload review.`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().Bool("keep-empty", false, "keep uncategorized zero-amount lines")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	keepEmpty, _ := cmd.Flags().GetBool("keep-empty")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	charges, err := store.ListCharges(ctx)
	if err != nil {
		return err
	}
	if len(charges) == 0 {
		fmt.Println(cli.FormatWarning("No stored charges to export."))
		return nil
	}

	if !keepEmpty {
		charges = reconcile.Prune(charges)
	}
	reconcile.SortByDate(charges)

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	if err := export.WriteUploadCSV(f, charges); err != nil {
		return fmt.Errorf("failed to write upload csv: %w", err)
	}

	unresolved := len(reconcile.Unresolved(charges))
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d charges to %s", len(charges), args[0])))
	if unresolved > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d charges carry the unresolved sentinel", unresolved)))
	}
	return nil
}
