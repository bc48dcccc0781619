package taxonomy

import (
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// specialCase is a deterministic shortcut applied before fuzzy matching:
// clinics abbreviate certain drugs and tests in ways edit distance cannot
// recover ("kcl", "da2pp", "hw").
type specialCase struct {
	regex  *regexp.Regexp
	result string
}

// subClassifier normalizes a matched charge fragment to a canonical
// vocabulary entry: special-case regexes first, then approximate best
// match against the vocabulary, accepted only above the threshold.
type subClassifier struct {
	strip      *regexp.Regexp
	cases      []specialCase
	vocabulary []string
	threshold  int
}

func (s *subClassifier) classify(text string) string {
	t := strings.ToLower(text)
	if s.strip != nil {
		t = strings.TrimSpace(s.strip.ReplaceAllString(t, ""))
	}
	for _, c := range s.cases {
		if c.regex.MatchString(t) {
			return c.result
		}
	}
	return bestMatch(t, s.vocabulary, s.threshold)
}

// bestMatch returns the vocabulary entry most similar to text, or "" when
// nothing reaches the threshold. Similarity is the better of whole-string
// and per-token Levenshtein ratio, so "amoxicillin 250mg tabs" still lands
// on "Amoxicillin". Ties keep the earliest vocabulary entry.
func bestMatch(text string, vocabulary []string, threshold int) string {
	tokens := strings.Fields(text)
	best := ""
	bestScore := 0
	for _, option := range vocabulary {
		lower := strings.ToLower(option)
		score := levenshteinRatio(text, lower)
		for _, tok := range tokens {
			if s := levenshteinRatio(tok, lower); s > score {
				score = s
			}
		}
		if score > bestScore {
			best, bestScore = option, score
		}
	}
	if bestScore < threshold {
		return ""
	}
	return best
}

// levenshteinRatio scores string similarity on a 0-100 scale.
func levenshteinRatio(a, b string) int {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	return (longest - dist) * 100 / longest
}

func newMedicationClassifier(threshold int) *subClassifier {
	return &subClassifier{
		cases: []specialCase{
			{regexp.MustCompile(`kcl`), "Electrolytes"},
			{regexp.MustCompile(`vit k1|vitamin`), "Vitamin"},
		},
		vocabulary: medicationVocabulary,
		threshold:  threshold,
	}
}

func newTestClassifier(threshold int) *subClassifier {
	return &subClassifier{
		cases: []specialCase{
			{regexp.MustCompile(`biopsy`), "Biopsy"},
			{regexp.MustCompile(`cbc|cpl|idx`), "Bloodwork"},
			{regexp.MustCompile(`\bhw\b`), "Heartworm"},
			{regexp.MustCompile(`tear|eye|opth`), "Opthamalogy"},
			{regexp.MustCompile(`\bua\b`), "Urine"},
			{regexp.MustCompile(`gi|gastro`), "Fecal"},
			{regexp.MustCompile(`tick|lyme`), "Lyme"},
			{regexp.MustCompile(`x-?ray`), "Radiology"},
		},
		vocabulary: testVocabulary,
		threshold:  threshold,
	}
}

func newVaccineClassifier(threshold int) *subClassifier {
	return &subClassifier{
		strip: regexp.MustCompile(`vaccine|vaccination|litter|1st|2nd|3rd|booster|adult|puppy|no lepto`),
		cases: []specialCase{
			{regexp.MustCompile(`dhpp|da2pp|da2p-pv`), "DHPP"},
			{regexp.MustCompile(`kennel cough`), "Bordetella"},
		},
		vocabulary: vaccineVocabulary,
		threshold:  threshold,
	}
}
