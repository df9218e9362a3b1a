package cli

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/hoanghai1803/newshub/internal/health"
	"github.com/hoanghai1803/newshub/internal/normalize"
	"github.com/hoanghai1803/newshub/internal/provider"
	"github.com/spf13/cobra"
)

func newHealthCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that every backend service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := health.Check(cmd.Context(), a.client, provider.Services)
			if a.json {
				return a.printJSON(reports)
			}
			renderHealth(a.out, reports)
			return nil
		},
	}
}

func newSentimentCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment <text>",
		Short: "Analyze the tone of a piece of text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := inputText(args)
			if text == "" {
				return provider.Validation("text", "Please enter some text to analyze.")
			}
			raw, err := a.client.AnalyzeSentiment(cmd.Context(), text)
			if err != nil {
				return err
			}
			s, err := normalize.Sentiment(raw)
			if err != nil {
				return err
			}
			if a.json {
				return a.printJSON(s)
			}
			renderSentiment(a.out, s)
			return nil
		},
	}
}

func newFactCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "factcheck <text or url>",
		Short: "Verify the claims in a text or the article at a URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			claim := inputText(args)
			if claim == "" {
				return provider.Validation("text", "Please enter some text or provide a URL to fact-check.")
			}
			raw, err := a.client.FactCheck(cmd.Context(), claim)
			if err != nil {
				return err
			}
			res, err := normalize.FactCheck(raw, claim)
			if err != nil {
				return err
			}
			if a.json {
				return a.printJSON(res)
			}
			renderFactCheck(a.out, res)
			return nil
		},
	}
}

func newBiasCommand(a *app) *cobra.Command {
	var articleURL string
	cmd := &cobra.Command{
		Use:   "bias [text]",
		Short: "Score the political bias of a text or article",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := inputText(args)
			articleURL = strings.TrimSpace(articleURL)

			var raw []byte
			var err error
			switch {
			case articleURL != "":
				raw, err = a.client.BiasURL(cmd.Context(), articleURL)
			case text != "":
				raw, err = a.client.BiasText(cmd.Context(), text)
			default:
				return provider.Validation("text", "Please enter some text or provide a URL to analyze.")
			}
			if err != nil {
				return err
			}

			res, err := normalize.Bias(raw)
			if err != nil {
				return err
			}
			if a.json {
				return a.printJSON(res)
			}
			renderBias(a.out, res)
			return nil
		},
	}
	cmd.Flags().StringVar(&articleURL, "url", "", "analyze the article at this URL instead of text")
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the bias model status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.client.BiasModelStatus(cmd.Context())
			if err != nil {
				return err
			}
			return a.printRaw(raw)
		},
	})
	return cmd
}

func newSummarizeCommand(a *app) *cobra.Command {
	var (
		articleURL string
		sentences  int
	)
	cmd := &cobra.Command{
		Use:   "summarize [text]",
		Short: "Summarize a text or the article at a URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := inputText(args)
			articleURL = strings.TrimSpace(articleURL)
			if sentences < 1 || sentences > 10 {
				return provider.Validation("sentences", "Sentences must be between 1 and 10.")
			}

			var raw []byte
			var err error
			inputLength := utf8.RuneCountInString(text)
			switch {
			case articleURL != "":
				raw, err = a.client.SummarizeURL(cmd.Context(), articleURL, sentences)
				inputLength = 0
			case text != "":
				raw, err = a.client.SummarizeText(cmd.Context(), text, sentences)
			default:
				return provider.Validation("text", "Please enter some text or provide a URL to summarize.")
			}
			if err != nil {
				return err
			}

			report, err := normalize.SummaryReport(raw, inputLength)
			if err != nil {
				return err
			}
			if a.json {
				return a.printJSON(report)
			}
			renderSummaryReport(a.out, report)
			return nil
		},
	}
	cmd.Flags().StringVar(&articleURL, "url", "", "summarize the article at this URL instead of text")
	cmd.Flags().IntVar(&sentences, "sentences", 3, "number of summary sentences (1-10)")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("sentences") {
			sentences = a.cfg.Client.Sentences
		}
	}
	return cmd
}

// printRaw re-indents an upstream JSON document.
func (a *app) printRaw(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return a.printJSON(v)
}
