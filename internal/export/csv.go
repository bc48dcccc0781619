// Package export serializes reconciled charges into the CSV layout the
// shelter management system's cost import expects.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/chin-tech/furangel-invoices/internal/common"
	"github.com/chin-tech/furangel-invoices/internal/model"
)

// uploadRow is one line of the cost import. Column names are the shelter
// system's, not ours.
type uploadRow struct {
	AnimalName      string `csv:"ANIMALNAME"`
	AnimalCode      string `csv:"ANIMALCODE"`
	CostDate        string `csv:"COSTDATE"`
	CostType        string `csv:"COSTTYPE"`
	CostDescription string `csv:"COSTDESCRIPTION"`
	CostAmount      string `csv:"COSTAMOUNT"`
	TestType        string `csv:"TESTTYPE"`
	TestPerformed   string `csv:"TESTPERFORMEDDATE"`
	TestDue         string `csv:"TESTDUEDATE"`
	TestComments    string `csv:"TESTCOMMENTS"`
	VaccineType     string `csv:"VACCINATIONTYPE"`
	VaccineGiven    string `csv:"VACCINATIONGIVENDATE"`
	VaccineDue      string `csv:"VACCINATIONDUEDATE"`
	VaccineComments string `csv:"VACCINATIONCOMMENTS"`
	MedGiven        string `csv:"MEDICALGIVENDATE"`
	MedName         string `csv:"MEDICALNAME"`
	MedDosage       string `csv:"MEDICALDOSAGE"`
	MedComments     string `csv:"MEDICALCOMMENTS"`
}

// WriteUploadCSV writes the charge table for upload. Unresolved charges
// carry the sentinel code so they are visible, and rejectable, on the
// other side.
func WriteUploadCSV(w io.Writer, charges []model.ChargeRecord) error {
	rows := make([]*uploadRow, 0, len(charges))
	for _, rec := range charges {
		rows = append(rows, &uploadRow{
			AnimalName:      rec.Resolution.Name,
			AnimalCode:      rec.Resolution.Code(),
			CostDate:        rec.Date.Format(common.DisplayDate),
			CostType:        string(rec.Category),
			CostDescription: rec.Description,
			CostAmount:      rec.Amount.StringFixed(2),
			TestType:        rec.TestType,
			TestPerformed:   rec.TestPerformed,
			TestDue:         rec.TestDue,
			TestComments:    rec.TestComments,
			VaccineType:     rec.VaccineType,
			VaccineGiven:    rec.VaccineGiven,
			VaccineDue:      rec.VaccineDue,
			VaccineComments: rec.VaccineComments,
			MedGiven:        rec.MedicationGiven,
			MedName:         rec.MedicationName,
			MedDosage:       rec.MedicationDosage,
			MedComments:     rec.MedicationNotes,
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write upload csv: %w", err)
	}
	return nil
}
