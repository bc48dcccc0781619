package model

// UnresolvedCode is the sentinel shelter code written at the CSV boundary
// for charges that could not be matched to a single animal. Inside the
// pipeline resolution state is carried by the Resolution type, never by
// comparing against this string.
const UnresolvedCode = "ERROR_CODE"

// Resolution is the outcome of matching a raw animal name against the
// shelter record snapshot. Either a single confident match was found, or
// the original name is preserved for human correction.
type Resolution struct {
	// Name is the matched display name, or the unmodified input name
	// when unresolved.
	Name        string
	ShelterCode string
	Resolved    bool
}

// ResolvedAnimal builds a resolution for a confident single match.
func ResolvedAnimal(name, shelterCode string) Resolution {
	return Resolution{Name: name, ShelterCode: shelterCode, Resolved: true}
}

// UnresolvedAnimal builds a resolution that defers to human correction,
// carrying the original input name untouched.
func UnresolvedAnimal(originalName string) Resolution {
	return Resolution{Name: originalName}
}

// Code returns the shelter code for export, substituting the sentinel for
// unresolved charges.
func (r Resolution) Code() string {
	if !r.Resolved {
		return UnresolvedCode
	}
	return r.ShelterCode
}
