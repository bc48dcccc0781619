package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chin-tech/furangel-invoices/internal/common"
	"github.com/chin-tech/furangel-invoices/internal/model"
)

func testStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testCharge(desc string, resolved bool) model.ChargeRecord {
	rec := model.ChargeRecord{
		Date:          time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
		Description:   desc,
		Amount:        decimal.RequireFromString("45.00"),
		Category:      model.CategoryTest,
		RawAnimalName: "fido",
		TestType:      "Heartworm",
		TestPerformed: "08/01/2024",
	}
	if resolved {
		rec.Resolution = model.ResolvedAnimal("Fido", "FA-001")
	} else {
		rec.Resolution = model.UnresolvedAnimal("fido")
	}
	return rec
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := testStorage(t)
	require.NoError(t, store.Migrate(context.Background()))

	version, err := store.schemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSaveAndListCharges(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	saved := []model.ChargeRecord{
		testCharge("[Clinic - 1 - 2024-08-01] heartworm test", true),
		testCharge("[Clinic - 1 - 2024-08-01] office visit", false),
	}
	require.NoError(t, store.SaveCharges(ctx, saved))

	got, err := store.ListCharges(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "[Clinic - 1 - 2024-08-01] heartworm test", first.Description)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("45.00")))
	assert.Equal(t, model.CategoryTest, first.Category)
	assert.Equal(t, "fido", first.RawAnimalName)
	assert.True(t, first.Resolution.Resolved)
	assert.Equal(t, "Fido", first.Resolution.Name)
	assert.Equal(t, "FA-001", first.Resolution.ShelterCode)
	assert.Equal(t, "Heartworm", first.TestType)
	assert.Equal(t, "08/01/2024", first.TestPerformed)

	second := got[1]
	assert.False(t, second.Resolution.Resolved)
	assert.Equal(t, "fido", second.Resolution.Name)
	assert.Empty(t, second.Resolution.ShelterCode)
}

func TestListUnresolved(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCharges(ctx, []model.ChargeRecord{
		testCharge("resolved one", true),
		testCharge("unresolved one", false),
	}))

	got, err := store.ListUnresolved(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "unresolved one", got[0].Description)
}

func TestReplaceCharges(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCharges(ctx, []model.ChargeRecord{
		testCharge("original", false),
	}))

	replacement := []model.ChargeRecord{
		testCharge("corrected a", true),
		testCharge("corrected b", true),
	}
	require.NoError(t, store.ReplaceCharges(ctx, replacement))

	got, err := store.ListCharges(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "corrected a", got[0].Description)
}

func TestMarkInvoiceProcessed(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	doc := &model.InvoiceDocument{
		Clinic: "Waipio Pet Clinic",
		Abbrev: "WPC",
		ID:     "12345",
		Date:   time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	processed, err := store.IsInvoiceProcessed(ctx, doc.ID, doc.Date)
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, store.MarkInvoiceProcessed(ctx, doc, "scan001.pdf"))

	processed, err = store.IsInvoiceProcessed(ctx, doc.ID, doc.Date)
	require.NoError(t, err)
	assert.True(t, processed)

	err = store.MarkInvoiceProcessed(ctx, doc, "scan001-copy.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	// Same id on a different date is a different invoice.
	other := *doc
	other.Date = doc.Date.AddDate(0, 1, 0)
	require.NoError(t, store.MarkInvoiceProcessed(ctx, &other, "scan002.pdf"))
}

func TestNewSQLiteStorageRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	require.Error(t, err)
}
