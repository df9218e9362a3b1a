package normalize

import (
	"strings"

	"github.com/hoanghai1803/newshub/internal/models"
)

const (
	defaultScore  = 0.5
	maxClaimRunes = 150
)

// FactCheck maps a fact-check service payload for the given claim.
func FactCheck(raw []byte, claim string) (models.FactCheckResult, error) {
	o, err := decode(raw, "fact-check")
	if err != nil {
		return models.FactCheckResult{}, err
	}

	reasoning, hasReasoning := o.str("reasoning")
	verdict := o.strOr("final_verdict", string(models.VerdictUnverified))

	res := models.FactCheckResult{
		Claim:           truncateClaim(claim),
		OverallScore:    o.numOr("credibility_score", defaultScore),
		Credibility:     o.strOr("confidence_level", "Unknown"),
		RawVerdict:      verdict,
		Verdict:         ClassifyVerdict(verdict),
		Sources:         []models.FactSource{},
		Explanation:     "Analysis completed.",
		Summary:         o.strOr("summary", "Fact-check analysis completed."),
		Bias:            biasAnalysis(o),
		SourcesVerified: o.intOr("sources_verified", 0),
	}
	if hasReasoning {
		res.Explanation = reasoning
		if _, ok := o.str("summary"); !ok {
			res.Summary = reasoning
		}
	}
	if t, ok := o.num("execution_time"); ok {
		res.ExecutionTime = &t
	}

	for _, a := range o.list("supporting_articles") {
		src := models.FactSource{
			Title:   a.strOr("title", "Unknown Source"),
			URL:     "#",
			Snippet: a.strOr("snippet", "No description available"),
		}
		if u, ok := a.str("link"); ok {
			src.URL = u
		} else if u, ok := a.str("url"); ok {
			src.URL = u
		}
		res.Sources = append(res.Sources, src)
	}
	return res, nil
}

func biasAnalysis(o object) models.BiasAnalysis {
	b := models.BiasAnalysis{
		PoliticalLean:     string(models.LeanNeutral),
		EmotionalLanguage: "Moderate",
		FactualReporting:  "High",
	}
	if ba, ok := o.obj("bias_analysis"); ok {
		b.PoliticalLean = ba.strOr("detected_bias", string(models.LeanNeutral))
		if indicators := ba.stringList("bias_indicators"); len(indicators) > 0 {
			b.EmotionalLanguage = strings.Join(indicators, ", ")
		}
		b.FactualReporting = neutralityRating(ba.numOr("neutrality_score", 0))
	}
	b.Lean = ClassifyLean(b.PoliticalLean)
	b.Emotional = ClassifyEmotion(b.EmotionalLanguage)
	b.Factual = ClassifyFactual(b.FactualReporting)
	return b
}

func neutralityRating(score float64) string {
	switch {
	case score > 0.7:
		return "High"
	case score > 0.4:
		return "Medium"
	default:
		return "Low"
	}
}

func truncateClaim(claim string) string {
	r := []rune(claim)
	if len(r) <= maxClaimRunes {
		return claim
	}
	return string(r[:maxClaimRunes]) + "..."
}
