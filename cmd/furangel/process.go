package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/chin-tech/furangel-invoices/internal/cli"
	"github.com/chin-tech/furangel-invoices/internal/common"
	"github.com/chin-tech/furangel-invoices/internal/invoice"
	"github.com/chin-tech/furangel-invoices/internal/model"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <directory>",
		Short: "Extract charges from a directory of invoice PDFs",
		Long: `Parse every invoice PDF in the directory, classify the itemized
charges, and store them for matching. Files that cannot be parsed are
moved to an unprocessed subdirectory for manual review.`,
		Args: cobra.ExactArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().String("unprocessed-dir", "", "directory for unparseable invoices (default: <directory>/unprocessed)")
	cmd.Flags().Bool("rename", false, "rename parsed files to <clinic>_<invoice>_<date>.pdf")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	dir := args[0]
	unprocessedDir, _ := cmd.Flags().GetString("unprocessed-dir")
	if unprocessedDir == "" {
		unprocessedDir = filepath.Join(dir, "unprocessed")
	}
	rename, _ := cmd.Flags().GetBool("rename")

	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	dispatcher, err := initDispatcher()
	if err != nil {
		return err
	}

	pdfs, err := listInvoicePDFs(dir)
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		fmt.Println(cli.FormatWarning("No invoice PDFs found in " + dir))
		return nil
	}

	bar := progressbar.NewOptions(len(pdfs),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Processing invoices..."),
	)

	var parsed, skipped, failed int
	for _, path := range pdfs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_ = bar.Add(1)

		outcome, err := processOne(cmd, store, dispatcher, path, unprocessedDir, rename)
		switch {
		case err != nil:
			return err
		case outcome == outcomeFailed:
			failed++
		case outcome == outcomeSkipped:
			skipped++
		default:
			parsed++
		}
	}

	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Processed %d invoices (%d duplicates skipped, %d unparseable)",
		parsed, skipped, failed)))
	if failed > 0 {
		fmt.Println(cli.FormatWarning("Unparseable invoices moved to " + unprocessedDir))
	}
	return nil
}

// chargeStore is the slice of storage the processing loop needs.
type chargeStore interface {
	SaveCharges(ctx context.Context, charges []model.ChargeRecord) error
	MarkInvoiceProcessed(ctx context.Context, doc *model.InvoiceDocument, filename string) error
}

type processOutcome int

const (
	outcomeParsed processOutcome = iota
	outcomeSkipped
	outcomeFailed
)

func processOne(cmd *cobra.Command, store chargeStore, dispatcher *invoice.Dispatcher, path, unprocessedDir string, rename bool) (processOutcome, error) {
	ctx := cmd.Context()
	filename := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return outcomeFailed, fmt.Errorf("failed to read %s: %w", path, err)
	}

	parser, err := dispatcher.Dispatch(data, filename)
	if err != nil {
		if common.IsParseFailure(err) {
			slog.Warn("invoice dispatch failed", "file", filename, "error", err)
			return outcomeFailed, moveToUnprocessed(path, unprocessedDir)
		}
		return outcomeFailed, err
	}

	doc, err := parser.Parse(ctx)
	if err != nil {
		if common.IsParseFailure(err) {
			slog.Warn("invoice parse failed", "file", filename, "error", err)
			return outcomeFailed, moveToUnprocessed(path, unprocessedDir)
		}
		return outcomeFailed, err
	}

	if err := store.MarkInvoiceProcessed(ctx, doc, filename); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			slog.Info("invoice already processed, skipping",
				"file", filename, "invoice", doc.ID, "date", doc.Date.Format("2006-01-02"))
			return outcomeSkipped, nil
		}
		return outcomeFailed, err
	}

	if err := store.SaveCharges(ctx, doc.Charges); err != nil {
		return outcomeFailed, err
	}

	if rename {
		canonical := filepath.Join(filepath.Dir(path), doc.Filename())
		if canonical != path {
			if err := os.Rename(path, canonical); err != nil {
				slog.Warn("failed to rename invoice", "file", filename, "error", err)
			}
		}
	}

	slog.Debug("invoice processed", "file", filename,
		"clinic", doc.Clinic, "invoice", doc.ID, "charges", len(doc.Charges))
	return outcomeParsed, nil
}

func listInvoicePDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var pdfs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			continue
		}
		if !invoice.IsLikelyInvoice(name) {
			slog.Debug("skipping non-invoice attachment", "file", name)
			continue
		}
		pdfs = append(pdfs, filepath.Join(dir, name))
	}
	return pdfs, nil
}

func moveToUnprocessed(path, unprocessedDir string) error {
	if err := os.MkdirAll(unprocessedDir, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", unprocessedDir, err)
	}
	dest := filepath.Join(unprocessedDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", path, unprocessedDir, err)
	}
	return nil
}
