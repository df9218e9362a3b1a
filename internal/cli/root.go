// Package cli implements the newshub terminal client: one-shot commands for
// each analysis service and an interactive headline feed.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hoanghai1803/newshub/internal/config"
	"github.com/hoanghai1803/newshub/internal/logging"
	"github.com/hoanghai1803/newshub/internal/provider"
	"github.com/spf13/cobra"
)

// app carries what every command needs once the config has been loaded.
type app struct {
	cfg    *config.Config
	client *provider.Client
	out    io.Writer
	json   bool
}

// NewRootCommand builds the command tree. Output goes to out and the feed
// reads its commands from in.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{out: out}
	var configPath string

	root := &cobra.Command{
		Use:           "newshub",
		Short:         "Browse headlines and check articles for facts, bias and tone",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
			a.cfg = cfg
			a.client = provider.NewClient(provider.Endpoints{
				News:       cfg.Client.NewsURL,
				FactCheck:  cfg.Client.FactCheckURL,
				Bias:       cfg.Client.BiasURL,
				Summarizer: cfg.Client.SummarizerURL,
			})
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config file")
	root.PersistentFlags().BoolVar(&a.json, "json", false, "print results as JSON")

	root.AddCommand(
		newHealthCommand(a),
		newSentimentCommand(a),
		newFactCheckCommand(a),
		newBiasCommand(a),
		newSummarizeCommand(a),
		newFeedCommand(a, in),
	)
	return root
}

// Execute runs the command tree with ctx and returns the user-facing error
// message, or "" on success.
func Execute(ctx context.Context, args []string, in io.Reader, out io.Writer) string {
	root := NewRootCommand(in, out)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return errorText(err)
	}
	return ""
}

// errorText turns a command error into the message shown to the user.
func errorText(err error) string {
	if provider.ClassOf(err) != "" || provider.IsValidation(err) {
		return provider.UserMessage(err)
	}
	return err.Error()
}

// printJSON writes v as indented JSON.
func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// inputText joins positional arguments into one trimmed string.
func inputText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
