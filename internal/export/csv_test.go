package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chin-tech/furangel-invoices/internal/model"
)

func TestWriteUploadCSV(t *testing.T) {
	charges := []model.ChargeRecord{
		{
			Date:          time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			Description:   "[Waipio Pet Clinic - 12345 - 2024-08-01] heartworm antigen test",
			Amount:        decimal.RequireFromString("45.00"),
			Category:      model.CategoryTest,
			RawAnimalName: "fido",
			Resolution:    model.ResolvedAnimal("Fido", "FA-001"),
			TestType:      "Heartworm",
			TestPerformed: "08/01/2024",
			TestDue:       "08/01/2024",
			TestComments:  "heartworm antigen test",
		},
		{
			Date:          time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC),
			Description:   "[Waipio Pet Clinic - 12345 - 2024-08-01] office visit",
			Amount:        decimal.RequireFromString("65.5"),
			Category:      model.CategoryExamination,
			RawAnimalName: "mystery",
			Resolution:    model.UnresolvedAnimal("mystery"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteUploadCSV(&buf, charges))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t,
		"ANIMALNAME,ANIMALCODE,COSTDATE,COSTTYPE,COSTDESCRIPTION,COSTAMOUNT,"+
			"TESTTYPE,TESTPERFORMEDDATE,TESTDUEDATE,TESTCOMMENTS,"+
			"VACCINATIONTYPE,VACCINATIONGIVENDATE,VACCINATIONDUEDATE,VACCINATIONCOMMENTS,"+
			"MEDICALGIVENDATE,MEDICALNAME,MEDICALDOSAGE,MEDICALCOMMENTS",
		lines[0])

	assert.Contains(t, lines[1], "Fido,FA-001,08/01/2024,Medical Test")
	assert.Contains(t, lines[1], "45.00")
	assert.Contains(t, lines[1], "Heartworm")

	// Unresolved charges carry the sentinel code and the raw name.
	assert.Contains(t, lines[2], "mystery,"+model.UnresolvedCode+",08/02/2024,Examination")
	assert.Contains(t, lines[2], "65.50")
}

func TestWriteUploadCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUploadCSV(&buf, nil))

	// Header only.
	assert.Equal(t, 1, len(strings.Split(strings.TrimSpace(buf.String()), "\n")))
}
