// Package model defines the core domain types shared across the invoice
// pipeline: charge records, shelter animal records, and parsed invoices.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostCategory is the taxonomy bucket a charge line is classified into.
type CostCategory string

// Cost categories accepted by the shelter management system.
const (
	CategoryExamination CostCategory = "Examination"
	CategoryEmergency   CostCategory = "Emergency Room"
	CategorySurgery     CostCategory = "Surgery"
	CategoryMedication  CostCategory = "Medication"
	CategoryFood        CostCategory = "Food"
	CategoryTest        CostCategory = "Medical Test"
	CategoryVaccination CostCategory = "Vaccination"
	CategorySpayNeuter  CostCategory = "Spay/Neuter"
	CategorySupplies    CostCategory = "Supplies"
	CategoryGrooming    CostCategory = "Grooming"
	CategoryMicrochip   CostCategory = "Microchip"
	CategoryBandage     CostCategory = "Bandages"
	CategoryEuthanasia  CostCategory = "Euthanasia"
	CategoryOther       CostCategory = "Other"
)

// Structured field names used by the shelter system's cost import. The
// classifier fills these by name convention: DATE fields get the charge
// date, COMMENT fields get the matched text, TYPE fields get a
// sub-classifier result, NAME fields get the medication name, DOSAGE
// fields get the first captured group.
const (
	FieldTestType         = "TESTTYPE"
	FieldTestPerformed    = "TESTPERFORMEDDATE"
	FieldTestDue          = "TESTDUEDATE"
	FieldTestComments     = "TESTCOMMENTS"
	FieldVaccineType      = "VACCINATIONTYPE"
	FieldVaccineGiven     = "VACCINATIONGIVENDATE"
	FieldVaccineDue       = "VACCINATIONDUEDATE"
	FieldVaccineComments  = "VACCINATIONCOMMENTS"
	FieldMedicationGiven  = "MEDICALGIVENDATE"
	FieldMedicationName   = "MEDICALNAME"
	FieldMedicationDosage = "MEDICALDOSAGE"
	FieldMedicationNotes  = "MEDICALCOMMENTS"
)

// ChargeRecord is one reconciled cost entry extracted from an invoice.
// Category and the structured fields are mutually determined: the
// classifier populates only the fields listed for the matched pattern.
type ChargeRecord struct {
	Date          time.Time
	Description   string // prefixed with [clinic - invoice id - invoice date]
	Amount        decimal.Decimal
	Category      CostCategory
	RawAnimalName string
	Resolution    Resolution

	TestType         string
	TestPerformed    string
	TestDue          string
	TestComments     string
	VaccineType      string
	VaccineGiven     string
	VaccineDue       string
	VaccineComments  string
	MedicationGiven  string
	MedicationName   string
	MedicationDosage string
	MedicationNotes  string
}

// SetField assigns a structured field by its shelter-system column name.
// Unknown names are ignored so pattern tables can evolve independently.
func (c *ChargeRecord) SetField(name, value string) {
	switch name {
	case FieldTestType:
		c.TestType = value
	case FieldTestPerformed:
		c.TestPerformed = value
	case FieldTestDue:
		c.TestDue = value
	case FieldTestComments:
		c.TestComments = value
	case FieldVaccineType:
		c.VaccineType = value
	case FieldVaccineGiven:
		c.VaccineGiven = value
	case FieldVaccineDue:
		c.VaccineDue = value
	case FieldVaccineComments:
		c.VaccineComments = value
	case FieldMedicationGiven:
		c.MedicationGiven = value
	case FieldMedicationName:
		c.MedicationName = value
	case FieldMedicationDosage:
		c.MedicationDosage = value
	case FieldMedicationNotes:
		c.MedicationNotes = value
	}
}

// Field returns a structured field by its shelter-system column name.
func (c *ChargeRecord) Field(name string) string {
	switch name {
	case FieldTestType:
		return c.TestType
	case FieldTestPerformed:
		return c.TestPerformed
	case FieldTestDue:
		return c.TestDue
	case FieldTestComments:
		return c.TestComments
	case FieldVaccineType:
		return c.VaccineType
	case FieldVaccineGiven:
		return c.VaccineGiven
	case FieldVaccineDue:
		return c.VaccineDue
	case FieldVaccineComments:
		return c.VaccineComments
	case FieldMedicationGiven:
		return c.MedicationGiven
	case FieldMedicationName:
		return c.MedicationName
	case FieldMedicationDosage:
		return c.MedicationDosage
	case FieldMedicationNotes:
		return c.MedicationNotes
	}
	return ""
}
