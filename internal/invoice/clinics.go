package invoice

// KnownClinics returns the configured clinic pattern sets, checked in
// order at dispatch time. Patterns are calibrated against each clinic's
// billing software output; per-line patterns run against lowercased lines,
// full-text patterns against the text as extracted.
func KnownClinics() []ClinicConfig {
	return []ClinicConfig{
		{
			Clinic:              "Waipio Pet Clinic",
			Abbrev:              "WPC",
			Signature:           `Waipio Pet Clinic`,
			LayoutText:          true,
			InvoiceIDPattern:    `Invoice:\s*(\d+)`,
			InvoiceDatePattern:  `Printed:\s*(\d{2}-\d{2}-\d{2})`,
			NamePattern:         `^\d{2}-\d{2}-\d{2}\s+([A-Za-z][\w']*(?: [\w']+)*?)\s{2,}`,
			ExcludeNames:        []string{"DIAGNOSIS"},
			LineNamePattern:     `^\d{2}-\d{2}-\d{2}\s+([a-z][\w']*(?: [\w']+)*?)\s{2,}`,
			SectionBeginPattern: `^\s+(Date.*)`,
			SectionEndMarker:    "Payment",
			LineDatePattern:     `^(\d{2}-\d{2}-\d{2})`,
			PricePattern:        `(\d+\.\d{2})`,
			ChargePattern:       `^\d{2}-\d{2}-\d{2}\s+[\w' ]+?\s{2,}(?:\d+(?:\.\d{1,2})?\s{2,})?([a-z][\w/ .-]*?)\s{2,}\d+\.\d{2}\*?\s*$`,
		},
		{
			Clinic:              "Wahiawa Pet Hospital",
			Abbrev:              "WPH",
			Signature:           `Wahiawa Pet Hospital`,
			LayoutText:          true,
			InvoiceIDPattern:    `Invoice:\s*(\d+)`,
			InvoiceDatePattern:  `Printed:\s*(\d{2}-\d{2}-\d{2})`,
			NamePattern:         `^\d{2}-\d{2}-\d{2}\s+([A-Za-z][\w']*(?: [\w']+)*?)\s{2,}`,
			ExcludeNames:        []string{"DIAGNOSIS"},
			SectionBeginPattern: `^\s+(Date.*)`,
			SectionEndMarker:    "Payment",
			LineDatePattern:     `^(\d{2}-\d{2}-\d{2})`,
			PricePattern:        `(\d+\.\d{2})`,
			ChargePattern:       `^\d{2}-\d{2}-\d{2}\s+[\w' ]+?\s{2,}(?:\d+(?:\.\d{1,2})?\s{2,})?([a-z][\w/ .-]*?)\s{2,}\d+\.\d{2}\*?\s*$`,
		},
		{
			Clinic:               "Veterinary Centers of America",
			Abbrev:               "VCA",
			Signature:            `VCA `,
			InvoiceIDPattern:     `Invoice:\s*(\d+)`,
			InvoiceDatePattern:   `\| Date: (\d{1,2}/\d{1,2}/\d{4})`,
			NamePattern:          `^ (.*) \(#\d+\)`,
			SectionBeginPattern:  `^\s+(Date.*)`,
			SectionEndMarker:     "Subtotal:",
			SectionReducePattern: `\n(\S)`,
			LineDatePattern:      `(\d{1,2}/\d{1,2}/\d{2,4})`,
			PricePattern:         `\$(\d+\.\d+)`,
			ChargePattern:        `(?:\d{1,2}/\d{1,2}/\d{4}\s+)?(\w.*?) \$`,
		},
		{
			Clinic:              "Animal House Veterinary Center",
			Abbrev:              "AHVC",
			Signature:           `Animal House Veterinary Center`,
			LayoutText:          true,
			InvoiceIDPattern:    `Invoice #:\s*(\d+)`,
			InvoiceDatePattern:  `Date:\s*(\d{1,2}/\d{1,2}/\d{4})`,
			NamePattern:         `Patient Name: (.+?)\s{2,}`,
			SectionBeginPattern: `^\s+(Description.*)`,
			SectionEndMarker:    "Patient Subtotal:",
			LineDatePattern:     `(\d{1,2}/\d{1,2}/\d{4})`,
			PricePattern:        `\$(\d+\.\d+)`,
			ChargePattern:       `\s{2,}(\S.+?  )\s+\S{1,2}`,
		},
		{
			Clinic:              "Mililani Mauka Veterinary Clinic",
			Abbrev:              "MMVC",
			Signature:           `Mililani Mauka Veterinary Clinic`,
			LayoutText:          true,
			InvoiceIDPattern:    `Invoice #:\s*(\d+)`,
			InvoiceDatePattern:  `Invoice date:\s*(\d{1,2}-\d{1,2}-\d{4})`,
			NamePattern:         `Animal Name:\s+(.+?)\s{2,}`,
			SectionBeginPattern: `\s+(Qty.*)`,
			SectionEndMarker:    "Subtotal:",
			LineDatePattern:     `(\d{1,2}/\d{1,2}/\d{4})`,
			PricePattern:        `\$(\d+\.\d+)`,
			ChargePattern:       `\s{2,}(\S.+?  )\s+\S{1,2}`,
		},
	}
}
