package models

// Lean is the reduced political lean of a piece of text.
type Lean string

const (
	LeanLeft    Lean = "Left"
	LeanNeutral Lean = "Neutral"
	LeanRight   Lean = "Right"
)

// Verdict is the reduced fact-check verdict.
type Verdict string

const (
	VerdictTrue          Verdict = "True"
	VerdictFalse         Verdict = "False"
	VerdictPartiallyTrue Verdict = "Partially True"
	VerdictUnverified    Verdict = "Unverified"
)

// BiasResult is the normalized answer of the bias detection service.
type BiasResult struct {
	Label       string   `json:"political_bias"`
	Lean        Lean     `json:"lean"`
	Confidence  float64  `json:"confidence"`
	Color       string   `json:"color_indicator"`
	Method      string   `json:"method"`
	Keywords    []string `json:"keywords"`
	Explanation string   `json:"explanation"`
}

// FactSource is a supporting article cited by the fact-check service.
type FactSource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// BiasAnalysis is the bias section of a fact-check result, already reduced
// to display categories.
type BiasAnalysis struct {
	PoliticalLean     string `json:"political_lean"`
	EmotionalLanguage string `json:"emotional_language"`
	FactualReporting  string `json:"factual_reporting"`

	Lean      Lean   `json:"lean"`
	Emotional string `json:"emotional"`
	Factual   string `json:"factual"`
}

// FactCheckResult is the normalized answer of the fact-check service.
type FactCheckResult struct {
	Claim           string       `json:"claim"`
	OverallScore    float64      `json:"overall_score"`
	Credibility     string       `json:"credibility"`
	RawVerdict      string       `json:"raw_verdict"`
	Verdict         Verdict      `json:"verdict"`
	Sources         []FactSource `json:"sources"`
	Explanation     string       `json:"explanation"`
	Summary         string       `json:"summary"`
	Bias            BiasAnalysis `json:"bias_analysis"`
	ExecutionTime   *float64     `json:"execution_time"`
	SourcesVerified int          `json:"sources_verified"`
}

// Readability is the coarse text-complexity view derived from summarizer
// statistics.
type Readability struct {
	Score      int    `json:"score"`
	Level      string `json:"level"`
	Complexity string `json:"complexity"`
}

// SummaryStats are the length statistics reported by the summarizer.
type SummaryStats struct {
	OriginalLength   int     `json:"original_length"`
	SummaryLength    int     `json:"summary_length"`
	CompressionRatio float64 `json:"compression_ratio"`
	ProcessingTime   float64 `json:"processing_time"`
}

// SummaryReport is the full summarizer view used by the summarize command.
type SummaryReport struct {
	Summary     string       `json:"summary"`
	Bullets     []string     `json:"bullets"`
	Sentiment   Sentiment    `json:"sentiment"`
	KeyTopics   []string     `json:"key_topics"`
	Readability Readability  `json:"readability"`
	Stats       SummaryStats `json:"statistics"`
}

// Health is one service's health probe answer.
type Health struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Up reports whether the service answered with an OK status.
func (h Health) Up() bool {
	return h.Status == "OK" || h.Status == "ok" || h.Status == "healthy"
}
