package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chin-tech/furangel-invoices/internal/model"
	"github.com/chin-tech/furangel-invoices/internal/reconcile"
)

func shelterRecord(name, code string) model.ShelterAnimalRecord {
	intake := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	return model.ShelterAnimalRecord{
		Name:           name,
		NormalizedName: model.NormalizeName(name),
		ShelterCode:    code,
		Intake:         intake,
		DaysOnShelter:  30,
		Departure:      model.ComputeDeparture(intake, 30),
	}
}

func unresolvedCharge(desc, rawName string) model.ChargeRecord {
	return model.ChargeRecord{
		Date:          time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC),
		Description:   desc,
		Amount:        decimal.RequireFromString("50.00"),
		RawAnimalName: rawName,
		Resolution:    model.UnresolvedAnimal(rawName),
	}
}

func TestGroupUnresolved(t *testing.T) {
	charges := []model.ChargeRecord{
		unresolvedCharge("[Clinic - 1 - 2024-08-01] office visit", "fido"),
		unresolvedCharge("[Clinic - 1 - 2024-08-01] heartworm test", "fido"),
		unresolvedCharge("[Clinic - 2 - 2024-08-02] office visit", "fido"),
		{Resolution: model.ResolvedAnimal("Luna", "FA-003")},
	}

	groups := groupUnresolved(charges)
	require.Len(t, groups, 2)
	assert.Equal(t, reconcile.GroupKey{RawName: "fido", InvoiceID: "1"}, groups[0].key)
	assert.Len(t, groups[0].charges, 2)
	assert.Equal(t, reconcile.GroupKey{RawName: "fido", InvoiceID: "2"}, groups[1].key)
}

func TestReviewUnresolvedSelectCandidate(t *testing.T) {
	records := []model.ShelterAnimalRecord{
		shelterRecord("Fido", "FA-001"),
		shelterRecord("Luna", "FA-003"),
	}
	charges := []model.ChargeRecord{
		unresolvedCharge("[Clinic - 1 - 2024-08-01] office visit", "fido"),
	}

	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("1\n"), &out)

	corrections, err := p.ReviewUnresolved(context.Background(), charges, records)
	require.NoError(t, err)

	require.Len(t, corrections, 1)
	require.Len(t, corrections[0].Animals, 1)
	assert.Equal(t, "Fido", corrections[0].Animals[0].Name)
	assert.Equal(t, "FA-001", corrections[0].Animals[0].ShelterCode)
	assert.Contains(t, out.String(), "fido")
}

func TestReviewUnresolvedSkipAndQuit(t *testing.T) {
	records := []model.ShelterAnimalRecord{shelterRecord("Fido", "FA-001")}
	charges := []model.ChargeRecord{
		unresolvedCharge("[Clinic - 1 - 2024-08-01] office visit", "fido"),
		unresolvedCharge("[Clinic - 2 - 2024-08-02] office visit", "fido"),
		unresolvedCharge("[Clinic - 3 - 2024-08-03] office visit", "fido"),
	}

	// Skip the first group, then quit; the third is never reached.
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("s\nq\n"), &out)

	corrections, err := p.ReviewUnresolved(context.Background(), charges, records)
	require.NoError(t, err)
	assert.Empty(t, corrections)
}

func TestReviewUnresolvedSplit(t *testing.T) {
	records := []model.ShelterAnimalRecord{
		shelterRecord("Huey", "FA-001"),
		shelterRecord("Dewey", "FA-002"),
	}
	charges := []model.ChargeRecord{
		unresolvedCharge("[Clinic - 1 - 2024-08-01] boarding", "the puppies"),
	}

	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("m\n1,2\n"), &out)

	corrections, err := p.ReviewUnresolved(context.Background(), charges, records)
	require.NoError(t, err)

	require.Len(t, corrections, 1)
	require.Len(t, corrections[0].Animals, 2)
	codes := []string{corrections[0].Animals[0].ShelterCode, corrections[0].Animals[1].ShelterCode}
	assert.ElementsMatch(t, []string{"FA-001", "FA-002"}, codes)
}

func TestReviewUnresolvedManualEntry(t *testing.T) {
	charges := []model.ChargeRecord{
		unresolvedCharge("[Clinic - 1 - 2024-08-01] office visit", "zzgrxx"),
	}

	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("e\nShadow\nFA-099\n"), &out)

	corrections, err := p.ReviewUnresolved(context.Background(), charges, nil)
	require.NoError(t, err)

	require.Len(t, corrections, 1)
	assert.Equal(t, []reconcile.ChosenAnimal{{Name: "Shadow", ShelterCode: "FA-099"}}, corrections[0].Animals)
}

func TestReviewUnresolvedInvalidChoiceReprompts(t *testing.T) {
	records := []model.ShelterAnimalRecord{shelterRecord("Fido", "FA-001")}
	charges := []model.ChargeRecord{
		unresolvedCharge("[Clinic - 1 - 2024-08-01] office visit", "fido"),
	}

	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("9\n1\n"), &out)

	corrections, err := p.ReviewUnresolved(context.Background(), charges, records)
	require.NoError(t, err)
	require.Len(t, corrections, 1)
	assert.Contains(t, out.String(), "Invalid choice")
}

func TestReviewUnresolvedNothingToDo(t *testing.T) {
	charges := []model.ChargeRecord{
		{Resolution: model.ResolvedAnimal("Luna", "FA-003")},
	}

	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	corrections, err := p.ReviewUnresolved(context.Background(), charges, nil)
	require.NoError(t, err)
	assert.Empty(t, corrections)
	assert.Contains(t, out.String(), "resolved")
}
