package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hoanghai1803/newshub/internal/feed"
	"github.com/hoanghai1803/newshub/internal/models"
)

func renderHealth(w io.Writer, reports []models.Health) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SERVICE\tSTATUS\tDETAIL")
	for _, r := range reports {
		detail := r.Message
		if r.Error != "" {
			detail = r.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Service, r.Status, detail)
	}
	tw.Flush()
}

func renderSentiment(w io.Writer, s models.Sentiment) {
	fmt.Fprintf(w, "Sentiment:  %s\n", s.Label)
	fmt.Fprintf(w, "Confidence: %.0f%%\n", s.Confidence*100)
	fmt.Fprintf(w, "Polarity:   %+.2f\n", s.Polarity)
}

func renderFactCheck(w io.Writer, r models.FactCheckResult) {
	fmt.Fprintf(w, "Claim:       %s\n", r.Claim)
	fmt.Fprintf(w, "Verdict:     %s (%s)\n", r.Verdict, r.RawVerdict)
	fmt.Fprintf(w, "Score:       %.0f%%\n", r.OverallScore*100)
	fmt.Fprintf(w, "Credibility: %s\n", r.Credibility)
	fmt.Fprintf(w, "\n%s\n", r.Summary)
	if r.Explanation != "" && r.Explanation != r.Summary {
		fmt.Fprintf(w, "\n%s\n", r.Explanation)
	}

	fmt.Fprintf(w, "\nBias: lean %s, emotional language %s, factual reporting %s\n",
		r.Bias.Lean, r.Bias.Emotional, r.Bias.Factual)

	if len(r.Sources) > 0 {
		fmt.Fprintf(w, "\nSources (%d verified):\n", r.SourcesVerified)
		for _, s := range r.Sources {
			fmt.Fprintf(w, "  - %s\n    %s\n", s.Title, s.URL)
		}
	}
	if r.ExecutionTime != nil {
		fmt.Fprintf(w, "\nChecked in %.1fs\n", *r.ExecutionTime)
	}
}

func renderBias(w io.Writer, r models.BiasResult) {
	fmt.Fprintf(w, "Political bias: %s (%s)\n", r.Label, r.Lean)
	fmt.Fprintf(w, "Confidence:     %.0f%%\n", r.Confidence*100)
	fmt.Fprintf(w, "Method:         %s\n", r.Method)
	if len(r.Keywords) > 0 {
		fmt.Fprintf(w, "Keywords:       %s\n", strings.Join(r.Keywords, ", "))
	}
	if r.Explanation != "" {
		fmt.Fprintf(w, "\n%s\n", r.Explanation)
	}
}

func renderSummaryReport(w io.Writer, r models.SummaryReport) {
	fmt.Fprintf(w, "%s\n\n", r.Summary)
	for _, b := range r.Bullets {
		fmt.Fprintln(w, b)
	}
	if len(r.KeyTopics) > 0 {
		fmt.Fprintf(w, "\nKey topics: %s\n", strings.Join(r.KeyTopics, ", "))
	}
	fmt.Fprintf(w, "Sentiment:  %s (%.0f%%)\n", r.Sentiment.Label, r.Sentiment.Confidence*100)
	fmt.Fprintf(w, "Readability: %d/10, %s, %s\n", r.Readability.Score, r.Readability.Level, r.Readability.Complexity)
	fmt.Fprintf(w, "Length: %d -> %d characters (%.0f%% compression) in %.2fs\n",
		r.Stats.OriginalLength, r.Stats.SummaryLength, r.Stats.CompressionRatio, r.Stats.ProcessingTime)
}

// renderFeed prints the collection with each visible summary under its
// article.
func renderFeed(w io.Writer, s feed.State, summaries func(key string) (models.Enrichment, bool)) {
	title := categoryTitle(s.Query.Category)
	if s.Query.Term != "" {
		fmt.Fprintf(w, "%s headlines matching %q (%d of %d)\n", title, s.Query.Term, len(s.Items), s.TotalResults)
	} else {
		fmt.Fprintf(w, "%s headlines (%d of %d)\n", title, len(s.Items), s.TotalResults)
	}

	if len(s.Items) == 0 && s.Err == nil {
		fmt.Fprintln(w, "No articles found.")
	}

	for i, it := range s.Items {
		fmt.Fprintf(w, "\n%2d. %s\n", i+1, it.Title)
		fmt.Fprintf(w, "    %s", it.Source)
		if it.PublishedAt != nil {
			fmt.Fprintf(w, " | %s", it.PublishedAt.Local().Format(time.DateTime))
		}
		if it.Author != models.DefaultAuthor {
			fmt.Fprintf(w, " | %s", it.Author)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "    %s\n", it.Description)
		if it.URL != "" {
			fmt.Fprintf(w, "    %s\n", it.URL)
		}
		if e, ok := summaries(it.Key); ok && e.Visible {
			renderEnrichment(w, e)
		}
	}

	if banner := s.Banner(); banner != "" {
		fmt.Fprintf(w, "\n! %s\n", banner)
	}
	if s.MoreAvailable() {
		fmt.Fprintln(w, "\nType \"more\" to load more articles.")
	}
}

func renderEnrichment(w io.Writer, e models.Enrichment) {
	fmt.Fprintf(w, "    Summary: %s\n", e.Summary)
	for _, p := range e.KeyPoints {
		fmt.Fprintf(w, "      %s\n", p)
	}
	if len(e.Entities) > 0 {
		fmt.Fprintf(w, "      Entities: %s\n", strings.Join(e.Entities, ", "))
	}
	if e.Sentiment != nil {
		fmt.Fprintf(w, "      Sentiment: %s (%.0f%%)\n", e.Sentiment.Label, e.Sentiment.Confidence*100)
	}
}

func categoryTitle(category string) string {
	if category == "" {
		category = feed.DefaultCategory
	}
	return strings.ToUpper(category[:1]) + category[1:]
}
