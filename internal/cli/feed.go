package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hoanghai1803/newshub/internal/enrich"
	"github.com/hoanghai1803/newshub/internal/feed"
	"github.com/hoanghai1803/newshub/internal/provider"
	"github.com/spf13/cobra"
)

const feedHelp = `Commands:
  list                 show the loaded articles
  more                 load the next page
  search <term>        search headlines in the current category
  clear                drop the search term
  category <name>      switch category (general, business, technology, ...)
  refresh              reload the first page
  summarize <n>        show or hide the summary of article n
  help                 show this help
  quit                 leave the feed`

func newFeedCommand(a *app, in io.Reader) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Browse top headlines interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := feed.NewView(feed.NewsSource{
				Client:   a.client,
				Country:  a.cfg.Client.Country,
				PageSize: a.cfg.Client.PageSize,
			})
			defer view.Close()

			var src enrich.Summarizer = enrich.ServiceSummarizer{Client: a.client, Sentences: a.cfg.Client.Sentences}
			if a.cfg.Client.Summarizer == "gemini" {
				src = enrich.GeminiSummarizer{Client: a.client}
			}
			summaries := enrich.New(src)
			defer summaries.Close()

			s := &session{view: view, summaries: summaries, out: a.out}
			return s.run(cmd.Context(), in, category)
		},
	}
	cmd.Flags().StringVar(&category, "category", feed.DefaultCategory, "category to open the feed on")
	return cmd
}

// session is one interactive feed run.
type session struct {
	view      *feed.View
	summaries *enrich.Cache
	out       io.Writer
}

// run loads the first page and then executes one command per input line
// until quit or end of input.
func (s *session) run(ctx context.Context, in io.Reader, category string) error {
	s.report(s.view.SetCategory(ctx, category))
	s.list()

	scanner := bufio.NewScanner(in)
	fmt.Fprint(s.out, "\n> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		if quit := s.exec(ctx, scanner.Text()); quit {
			return nil
		}
		fmt.Fprint(s.out, "\n> ")
	}
	return scanner.Err()
}

// exec runs one command line and reports whether the session should end.
func (s *session) exec(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "":
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(s.out, feedHelp)
	case "list", "ls":
		s.list()
	case "more":
		if s.report(s.view.LoadMore(ctx)) {
			s.list()
		}
	case "search":
		if s.report(s.view.Search(ctx, arg)) {
			s.list()
		}
	case "clear":
		if s.report(s.view.ClearSearch(ctx)) {
			s.list()
		}
	case "category":
		if s.report(s.view.SetCategory(ctx, arg)) {
			s.list()
		}
	case "refresh":
		if s.report(s.view.Refresh(ctx)) {
			s.list()
		}
	case "summarize", "sum":
		s.summarize(ctx, arg)
	default:
		fmt.Fprintf(s.out, "Unknown command %q. Type \"help\" for the list of commands.\n", name)
	}
	return false
}

// report prints the message for a feed operation error and reports whether
// the collection should be shown. Fetch failures are shown by the banner.
func (s *session) report(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, feed.ErrBusy):
		fmt.Fprintln(s.out, "Still loading, please wait.")
	case errors.Is(err, feed.ErrNotLoaded):
		fmt.Fprintln(s.out, "Nothing loaded yet. Try \"refresh\".")
	case errors.Is(err, feed.ErrNoMore):
		fmt.Fprintln(s.out, "No more articles.")
	case errors.Is(err, feed.ErrSuperseded), errors.Is(err, feed.ErrClosed):
	case provider.IsValidation(err):
		fmt.Fprintln(s.out, provider.UserMessage(err))
	default:
		return true
	}
	return false
}

func (s *session) list() {
	renderFeed(s.out, s.view.Snapshot(), s.summaries.Get)
}

func (s *session) summarize(ctx context.Context, arg string) {
	items := s.view.Snapshot().Items
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(items) {
		fmt.Fprintf(s.out, "Pick an article number between 1 and %d.\n", len(items))
		return
	}
	item := items[n-1]

	fmt.Fprintf(s.out, "%s\n", item.Title)
	e, outcome := s.summaries.Request(ctx, item)
	switch outcome {
	case enrich.InFlight:
		fmt.Fprintln(s.out, "A summary for this article is already being generated.")
	case enrich.Closed:
	default:
		if !e.Visible {
			fmt.Fprintln(s.out, "Summary hidden.")
			return
		}
		renderEnrichment(s.out, e)
	}
}
