package common

import (
	"fmt"
	"time"
)

// InvoiceDateFormats are the accepted invoice date layouts, tried in order:
// MM-DD-YY, MM/DD/YYYY, MM-DD-YYYY. Clinic software disagrees on which it
// prints, sometimes within one invoice.
var InvoiceDateFormats = []string{"01-02-06", "1/2/2006", "1-2-2006"}

// DisplayDate is the layout the shelter system expects for cost and
// treatment dates.
const DisplayDate = "01/02/2006"

// ParseInvoiceDate parses a date string under the accepted invoice
// formats, first success winning. The formats are mutually exclusive for
// any given string, so trial order never changes the result.
func ParseInvoiceDate(s string) (time.Time, error) {
	for _, layout := range InvoiceDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
}
