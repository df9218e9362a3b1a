package normalize

import (
	"strings"

	"github.com/hoanghai1803/newshub/internal/models"
)

// Rule maps free text to Label when the text contains at least one of Any
// and none of None. Matching is case-insensitive substring matching.
type Rule struct {
	Label string
	Any   []string
	None  []string
}

func (r Rule) matches(s string) bool {
	for _, kw := range r.None {
		if strings.Contains(s, kw) {
			return false
		}
	}
	for _, kw := range r.Any {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Classifier reduces free-text labels to a closed set. Rules are tried in
// order and the first match wins; Default catches everything else.
type Classifier struct {
	Rules   []Rule
	Default string
}

// Classify returns the label of the first matching rule.
func (c Classifier) Classify(s string) string {
	s = strings.ToLower(s)
	for _, r := range c.Rules {
		if r.matches(s) {
			return r.Label
		}
	}
	return c.Default
}

var (
	verdictClassifier = Classifier{
		Rules: []Rule{
			{Label: string(models.VerdictTrue), Any: []string{"true"}, None: []string{"false", "partially"}},
			{Label: string(models.VerdictFalse), Any: []string{"false"}, None: []string{"partially"}},
			{Label: string(models.VerdictPartiallyTrue), Any: []string{"partially", "mixed", "some"}},
		},
		Default: string(models.VerdictUnverified),
	}

	leanClassifier = Classifier{
		Rules: []Rule{
			{Label: string(models.LeanLeft), Any: []string{"left", "liberal"}},
			{Label: string(models.LeanRight), Any: []string{"right", "conservative"}},
		},
		Default: string(models.LeanNeutral),
	}

	emotionClassifier = Classifier{
		Rules: []Rule{
			{Label: "Strong", Any: []string{"strong", "high", "extreme"}},
			{Label: "Unsubstantiated", Any: []string{"unsubstantiated", "misleading"}},
		},
		Default: "Neutral",
	}

	factualClassifier = Classifier{
		Rules: []Rule{
			{Label: "High", Any: []string{"high"}},
			{Label: "Medium", Any: []string{"medium"}},
		},
		Default: "Low",
	}
)

// ClassifyVerdict reduces a provider verdict such as "Mostly false" to one
// of True, False, Partially True or Unverified.
func ClassifyVerdict(s string) models.Verdict {
	return models.Verdict(verdictClassifier.Classify(s))
}

// ClassifyLean reduces a political bias label to Left, Right or Neutral.
func ClassifyLean(s string) models.Lean {
	return models.Lean(leanClassifier.Classify(s))
}

// ClassifyEmotion reduces an emotional-language description to Strong,
// Unsubstantiated or Neutral.
func ClassifyEmotion(s string) string {
	return emotionClassifier.Classify(s)
}

// ClassifyFactual reduces a factual-reporting rating to High, Medium or Low.
func ClassifyFactual(s string) string {
	return factualClassifier.Classify(s)
}
