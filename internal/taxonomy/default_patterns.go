package taxonomy

import "github.com/chin-tech/furangel-invoices/internal/model"

var (
	medicationFields = []string{
		model.FieldMedicationGiven,
		model.FieldMedicationName,
		model.FieldMedicationDosage,
		model.FieldMedicationNotes,
	}
	testFields = []string{
		model.FieldTestType,
		model.FieldTestPerformed,
		model.FieldTestDue,
		model.FieldTestComments,
	}
	vaccineFields = []string{
		model.FieldVaccineType,
		model.FieldVaccineGiven,
		model.FieldVaccineComments,
		model.FieldVaccineDue,
	}
)

// DefaultPatterns returns the ordered cost classification table. Order is
// calibrated against historical invoices: supply lines mention surgical
// nouns incidentally so supplies precede surgery, and spay/neuter lines
// are usually billed as "SURGERY - SPAY" so spay/neuter precedes surgery
// too.
func DefaultPatterns() []CostPattern {
	return []CostPattern{
		{
			Pattern:  `shampoo|oz|collar|syr|mousse|\d+ ?ct\b`,
			Category: model.CategorySupplies,
		},
		{
			Pattern:  `spay|neuter`,
			Category: model.CategorySpayNeuter,
		},
		{
			Pattern:  `surgery|extract|ectomy|mass rem|ablation|rooted|\w+tomy`,
			Category: model.CategorySurgery,
		},
		{
			Pattern:  `test|blood|ide?x|wood's|fecal|echocardiogram|hw|cbc|screen|ometry|ology|x.?ray|parasite|ua |urin[ea]|glucose|freestyle`,
			Category: model.CategoryTest,
			Fields:   testFields,
		},
		{
			Pattern:  `vacc|bordetella`,
			Category: model.CategoryVaccination,
			Fields:   vaccineFields,
		},
		{
			// Dosage units: "cerenia 16mg", "amoxicillin 250 mg".
			Pattern:  `(\d+\.?\d*\s?(?:mg|ml|meq|ug|mcg|g|%/g|%/ml))`,
			Category: model.CategoryMedication,
			Fields:   medicationFields,
		},
		{
			// Weight-range dosing: "nexgard 10.1-24lb".
			Pattern:  `((?:\d+\.?\d+- ?\d+)lb|(?:\d+- ?\d+\.?\d*)lb)`,
			Category: model.CategoryMedication,
			Fields:   medicationFields,
		},
		{
			Pattern:  `k9|treat|ckn|chicken`,
			Category: model.CategoryFood,
		},
		{
			// Bare numeric ranges some clinics print for dose bands.
			Pattern:  `(\d{1,2}\.\d-\d{2})`,
			Category: model.CategoryMedication,
			Fields:   medicationFields,
		},
		{
			Pattern:  `microchip`,
			Category: model.CategoryMicrochip,
		},
		{
			Pattern:  `prophy|tartar|pedicure|polish|nail trim`,
			Category: model.CategoryGrooming,
		},
		{
			Pattern:  `office|ofc e| ofc|exam|anal gland`,
			Category: model.CategoryExamination,
		},
		{
			Pattern:  `bandage`,
			Category: model.CategoryBandage,
		},
		{
			Pattern:  `euthanasia`,
			Category: model.CategoryEuthanasia,
		},
	}
}
