package enrich

import (
	"context"

	"github.com/hoanghai1803/newshub/internal/models"
	"github.com/hoanghai1803/newshub/internal/normalize"
)

// DefaultSentences is the summary length requested from the summarizer
// service for article enrichments.
const DefaultSentences = 3

// SummarizerClient is the part of the provider client the summarizer
// service backend needs.
type SummarizerClient interface {
	SummarizeText(ctx context.Context, text string, sentences int) ([]byte, error)
	SummarizeURL(ctx context.Context, articleURL string, sentences int) ([]byte, error)
}

// ServiceSummarizer enriches articles with the summarizer microservice.
type ServiceSummarizer struct {
	Client    SummarizerClient
	Sentences int
}

func (s ServiceSummarizer) sentences() int {
	if s.Sentences < 1 {
		return DefaultSentences
	}
	return s.Sentences
}

// SummarizeURL implements Summarizer.
func (s ServiceSummarizer) SummarizeURL(ctx context.Context, articleURL string) (models.Enrichment, error) {
	raw, err := s.Client.SummarizeURL(ctx, articleURL, s.sentences())
	if err != nil {
		return models.Enrichment{}, err
	}
	return normalize.SummarizerDigest(raw)
}

// SummarizeText implements Summarizer.
func (s ServiceSummarizer) SummarizeText(ctx context.Context, text string) (models.Enrichment, error) {
	raw, err := s.Client.SummarizeText(ctx, text, s.sentences())
	if err != nil {
		return models.Enrichment{}, err
	}
	return normalize.SummarizerDigest(raw)
}

// GeminiClient is the part of the provider client the generative backend
// needs.
type GeminiClient interface {
	GeminiSummarize(ctx context.Context, content string) ([]byte, error)
	GeminiSummarizeURL(ctx context.Context, articleURL string) ([]byte, error)
}

// GeminiSummarizer enriches articles with the proxy's generative
// summarization endpoint.
type GeminiSummarizer struct {
	Client GeminiClient
}

// SummarizeURL implements Summarizer.
func (g GeminiSummarizer) SummarizeURL(ctx context.Context, articleURL string) (models.Enrichment, error) {
	raw, err := g.Client.GeminiSummarizeURL(ctx, articleURL)
	if err != nil {
		return models.Enrichment{}, err
	}
	return normalize.GeminiDigest(raw)
}

// SummarizeText implements Summarizer.
func (g GeminiSummarizer) SummarizeText(ctx context.Context, text string) (models.Enrichment, error) {
	raw, err := g.Client.GeminiSummarize(ctx, text)
	if err != nil {
		return models.Enrichment{}, err
	}
	return normalize.GeminiDigest(raw)
}
