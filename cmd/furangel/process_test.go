package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0o600))
}

func TestListInvoicePDFs(t *testing.T) {
	dir := t.TempDir()

	touch(t, filepath.Join(dir, "invoice_001.pdf"))
	touch(t, filepath.Join(dir, "WPC_12345_2024-08-01.PDF"))
	touch(t, filepath.Join(dir, "statement_july.pdf"))
	touch(t, filepath.Join(dir, "notes.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "unprocessed"), 0o750))

	pdfs, err := listInvoicePDFs(dir)
	require.NoError(t, err)

	require.Len(t, pdfs, 2)
	assert.Contains(t, pdfs, filepath.Join(dir, "invoice_001.pdf"))
	assert.Contains(t, pdfs, filepath.Join(dir, "WPC_12345_2024-08-01.PDF"))
}

func TestListInvoicePDFsMissingDir(t *testing.T) {
	_, err := listInvoicePDFs(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestMoveToUnprocessed(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.pdf")
	touch(t, src)

	unprocessed := filepath.Join(dir, "unprocessed")
	require.NoError(t, moveToUnprocessed(src, unprocessed))

	_, err := os.Stat(filepath.Join(unprocessed, "bad.pdf"))
	require.NoError(t, err)
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}
