package normalize

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hoanghai1803/newshub/internal/models"
)

const (
	noSummary    = "No summary available"
	maxKeyPoints = 5
	bulletPrefix = "• "
)

// GeminiDigest maps the generative summarize payload
// {summary, keyPoints, entities} to a visible enrichment.
func GeminiDigest(raw []byte) (models.Enrichment, error) {
	o, err := decode(raw, "gemini-summarize")
	if err != nil {
		return models.Enrichment{}, err
	}
	return models.Enrichment{
		Summary:   o.strOr("summary", noSummary),
		KeyPoints: o.stringList("keyPoints"),
		Entities:  o.stringList("entities"),
		Visible:   true,
	}, nil
}

// SummarizerDigest maps a summarizer service payload to a visible
// enrichment. The first five keywords become bulleted key points and every
// keyword is listed as an entity.
func SummarizerDigest(raw []byte) (models.Enrichment, error) {
	o, err := decode(raw, "summarize")
	if err != nil {
		return models.Enrichment{}, err
	}

	keywords := o.stringList("keywords")
	points := make([]string, 0, min(len(keywords), maxKeyPoints))
	for _, k := range keywords[:min(len(keywords), maxKeyPoints)] {
		points = append(points, bulletPrefix+k)
	}

	e := models.Enrichment{
		Summary:          o.strOr("summary", noSummary),
		KeyPoints:        points,
		Entities:         keywords,
		ProcessingTime:   o.numOr("processing_time", 0),
		CompressionRatio: o.numOr("compression_ratio", 0),
		Visible:          true,
	}
	if sa, ok := o.obj("sentiment_analysis"); ok {
		s := sentiment(sa)
		e.Sentiment = &s
	}
	return e, nil
}

// SummaryReport maps a summarizer payload to the full report view.
// inputLength stands in for original_length when the service omits it.
func SummaryReport(raw []byte, inputLength int) (models.SummaryReport, error) {
	o, err := decode(raw, "summarize")
	if err != nil {
		return models.SummaryReport{}, err
	}

	summary := o.strOr("summary", noSummary)
	ratio := o.numOr("compression_ratio", 0)

	r := models.SummaryReport{
		Summary:   summary,
		Bullets:   bullets(summary),
		Sentiment: models.Sentiment{Label: "Neutral"},
		KeyTopics: o.stringList("keywords"),
		Readability: models.Readability{
			Score:      int(math.Round(ratio / 10)),
			Level:      ratioLevel(ratio),
			Complexity: "Simple",
		},
		Stats: models.SummaryStats{
			OriginalLength:   o.intOr("original_length", inputLength),
			SummaryLength:    o.intOr("summary_length", utf8.RuneCountInString(summary)),
			CompressionRatio: ratio,
			ProcessingTime:   o.numOr("processing_time", 0),
		},
	}
	if sa, ok := o.obj("sentiment_analysis"); ok {
		r.Sentiment = sentiment(sa)
		if obj, _ := sa.str("objectivity"); obj == "Mixed" {
			r.Readability.Complexity = "Complex"
		}
	}
	return r, nil
}

// Sentiment maps a sentiment analysis payload. Both the bare shape and one
// nested under "sentiment_analysis" are accepted.
func Sentiment(raw []byte) (models.Sentiment, error) {
	o, err := decode(raw, "analyze-sentiment")
	if err != nil {
		return models.Sentiment{}, err
	}
	if sa, ok := o.obj("sentiment_analysis"); ok {
		o = sa
	}
	return sentiment(o), nil
}

func sentiment(o object) models.Sentiment {
	return models.Sentiment{
		Label:      o.strOr("sentiment", "Neutral"),
		Confidence: o.numOr("confidence", 0),
		Polarity:   o.numOr("polarity", 0),
	}
}

// bullets splits a summary into sentences and prefixes each with a bullet.
func bullets(summary string) []string {
	out := []string{}
	for _, s := range strings.Split(summary, ". ") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, bulletPrefix+s)
		}
	}
	return out
}

func ratioLevel(ratio float64) string {
	switch {
	case ratio > 70:
		return "High"
	case ratio > 40:
		return "Medium"
	default:
		return "Low"
	}
}
