package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedicationClassifier(t *testing.T) {
	c := newMedicationClassifier(DefaultFuzzyThreshold)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"exact name", "cerenia 16mg tab", "Cerenia"},
		{"typo absorbed", "gabapentn 100mg cap", "Gabapentin"},
		{"kcl special case", "kcl 2meq/ml inj", "Electrolytes"},
		{"vitamin special case", "vit k1 25mg", "Vitamin"},
		{"brand with packaging", "nexgard 10.1-24lb chew", "Nexgard"},
		{"nothing close enough", "zzzzqqqq", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.classify(tt.text))
		})
	}
}

func TestTestClassifier(t *testing.T) {
	c := newTestClassifier(DefaultFuzzyThreshold)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"cbc shortcut", "cbc/chem panel", "Bloodwork"},
		{"idexx shortcut", "idx 4dx plus", "Bloodwork"},
		{"hw word boundary", "hw antigen", "Heartworm"},
		{"eye exam", "schirmer tear test", "Opthamalogy"},
		{"urinalysis shortcut", "ua w/ culture", "Urine"},
		{"gi panel", "gi parasite screen", "Fecal"},
		{"radiograph", "x-ray 2 views", "Radiology"},
		{"fuzzy fallback", "fecal flotation", "Fecal"},
		{"heartworm spelled out", "heartworm antigen test", "Heartworm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.classify(tt.text))
		})
	}
}

func TestVaccineClassifier(t *testing.T) {
	c := newVaccineClassifier(DefaultFuzzyThreshold)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"da2pp shortcut", "da2pp vaccine 1st puppy", "DHPP"},
		{"dhpp direct", "dhpp booster", "DHPP"},
		{"kennel cough", "kennel cough intranasal", "Bordetella"},
		{"bordetella fuzzy", "bordatella vaccination", "Bordetella"},
		{"lepto", "leptospirosis adult", "Leptospirosis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.classify(tt.text))
		})
	}
}

func TestLevenshteinRatio(t *testing.T) {
	assert.Equal(t, 100, levenshteinRatio("cerenia", "cerenia"))
	assert.Equal(t, 0, levenshteinRatio("", ""))
	assert.Greater(t, levenshteinRatio("gabapentn", "gabapentin"), 80)
	assert.Less(t, levenshteinRatio("zzzz", "cerenia"), DefaultFuzzyThreshold)
}
