// Package review turns raw provider reviews into a bounded, masked,
// diversity-balanced clue set for one title.
package review

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Bucket classifies an admissible review by how much it gives away.
type Bucket int

const (
	// BucketFiller marks degenerate, very short reviews used only as a last
	// resort.
	BucketFiller Bucket = iota
	// BucketPunchy marks short but serviceable reviews.
	BucketPunchy
	// BucketInformative marks longer reviews that describe the game.
	BucketInformative
)

// Rejection reasons reported in Stats.
const (
	ReasonTooShort    = "too_short"
	ReasonTooLong     = "too_long"
	ReasonForbidden   = "forbidden_topic"
	ReasonLowAlpha    = "low_alpha"
	ReasonForeign     = "foreign_language"
	ReasonRepeatedRun = "repeated_run"
	ReasonStockPhrase = "stock_phrase"
	ReasonDuplicate   = "duplicate"
)

// Raw is one unprocessed review as delivered by the provider. Untrusted.
type Raw struct {
	Text            string
	PlaytimeMinutes int
	HelpfulVotes    int
}

// Candidate is an admissible review with the title masked out. Immutable
// after creation.
type Candidate struct {
	Text            string
	PlaytimeMinutes int
	HelpfulVotes    int
	Bucket          Bucket
}

// Policy is one admissibility ruleset. Policies are configuration data so
// thresholds can be tuned and tests can substitute fixtures; Classify is the
// only logic attached to them.
type Policy struct {
	Name string

	// Length bounds in runes.
	MinLen int
	MaxLen int

	// Bucket thresholds in runes.
	InformativeMinLen int
	PunchyMinLen      int

	// Minimum count of letter runes; rejects pure emoji and ASCII art.
	MinAlpha int

	// Terms whose presence makes a review inadmissible outright.
	ForbiddenTerms []string

	// MarkerWords is a foreign-language heuristic, not a detector: a review
	// matching MarkerThreshold or more of these function words is assumed to
	// be in the wrong language.
	MarkerWords     []string
	MarkerThreshold int

	// StockPhrases reject short generic praise. Only reviews shorter than
	// StockPhraseMaxLen runes are checked; an empty list disables the rule.
	StockPhrases      []string
	StockPhraseMaxLen int
}

// Verdict is the classification outcome for one review text.
type Verdict struct {
	Admissible bool
	Bucket     Bucket
	Reason     string
}

// DefaultPolicies returns the strict ruleset and its relaxed fallback, tried
// in order until enough reviews survive.
func DefaultPolicies() []Policy {
	forbidden := []string{"siyaset", "seçim", "politika"}
	markers := []string{"the", "is", "and", "this"}
	stock := []string{
		"tavsiye ederim", "öneririm", "10/10",
		"güzel oyun", "harika oyun", "mükemmel oyun", "efsane oyun",
	}

	strict := Policy{
		Name:              "strict",
		MinLen:            20,
		MaxLen:            300,
		InformativeMinLen: 80,
		PunchyMinLen:      20,
		MinAlpha:          8,
		ForbiddenTerms:    forbidden,
		MarkerWords:       markers,
		MarkerThreshold:   2,
		StockPhrases:      stock,
		StockPhraseMaxLen: 80,
	}

	relaxed := strict
	relaxed.Name = "relaxed"
	relaxed.MinLen = 12
	relaxed.MaxLen = 600
	relaxed.StockPhrases = nil

	return []Policy{strict, relaxed}
}

// Classify decides admissibility of one raw review text and, when admissible,
// assigns its bucket.
func (p Policy) Classify(text string) Verdict {
	t := strings.ToLower(strings.TrimSpace(text))
	length := utf8.RuneCountInString(t)

	switch {
	case length < p.MinLen:
		return Verdict{Reason: ReasonTooShort}
	case length > p.MaxLen:
		return Verdict{Reason: ReasonTooLong}
	}

	for _, term := range p.ForbiddenTerms {
		if term != "" && strings.Contains(t, strings.ToLower(term)) {
			return Verdict{Reason: ReasonForbidden}
		}
	}

	if countLetters(t) < p.MinAlpha {
		return Verdict{Reason: ReasonLowAlpha}
	}

	if p.MarkerThreshold > 0 && countMarkers(t, p.MarkerWords) >= p.MarkerThreshold {
		return Verdict{Reason: ReasonForeign}
	}

	if isRepeatedRun(t) {
		return Verdict{Reason: ReasonRepeatedRun}
	}

	if length < p.StockPhraseMaxLen {
		for _, phrase := range p.StockPhrases {
			if strings.Contains(t, strings.ToLower(phrase)) {
				return Verdict{Reason: ReasonStockPhrase}
			}
		}
	}

	return Verdict{Admissible: true, Bucket: p.bucket(length)}
}

func (p Policy) bucket(length int) Bucket {
	switch {
	case length >= p.InformativeMinLen:
		return BucketInformative
	case length >= p.PunchyMinLen:
		return BucketPunchy
	default:
		return BucketFiller
	}
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// countMarkers counts whole-word matches by padding the text, so "is" never
// matches inside "tavsiye".
func countMarkers(t string, words []string) int {
	padded := " " + t + " "
	n := 0
	for _, w := range words {
		if w == "" {
			continue
		}
		if strings.Contains(padded, " "+strings.ToLower(w)+" ") {
			n++
		}
	}
	return n
}

// isRepeatedRun reports whether the text is a single character repeated, like
// "wwwwww" or "aaaaaaaa".
func isRepeatedRun(t string) bool {
	var first rune
	count := 0
	for _, r := range t {
		if count == 0 {
			first = r
		} else if r != first {
			return false
		}
		count++
	}
	return count > 1
}
