package models

// EnrichmentFailedSummary is shown when no summary could be produced for an
// article. It is terminal: the record is never retried.
const EnrichmentFailedSummary = "Unable to generate summary. Please try again later."

// Sentiment is the tone reported by the summarizer service.
type Sentiment struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Polarity   float64 `json:"polarity"`
}

// Enrichment is the derived summary artifact kept per article key.
type Enrichment struct {
	Summary          string     `json:"summary"`
	KeyPoints        []string   `json:"key_points"`
	Entities         []string   `json:"entities"`
	Sentiment        *Sentiment `json:"sentiment,omitempty"`
	ProcessingTime   float64    `json:"processing_time"`
	CompressionRatio float64    `json:"compression_ratio"`
	Visible          bool       `json:"visible"`
	// InFlight marks the placeholder handed back while the summary for the
	// key is still being computed. Stored records never carry it.
	InFlight bool `json:"in_flight"`
	Failed   bool `json:"failed"`
}

// FailedEnrichment returns the terminal record stored when every attempt to
// summarize an article failed.
func FailedEnrichment() Enrichment {
	return Enrichment{
		Summary:   EnrichmentFailedSummary,
		KeyPoints: []string{},
		Entities:  []string{},
		Visible:   true,
		Failed:    true,
	}
}
