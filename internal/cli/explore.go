package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goganux/texas-career-path-explorer/internal/presentation/tui"
	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/pathway"
	"github.com/goganux/texas-career-path-explorer/pkg/ports"
	"github.com/goganux/texas-career-path-explorer/pkg/session"
)

const exploreHelp = `Commands:
  <id> | select <id>   click a node (careers toggle their path, others show details)
  filter <status>      toggle a status filter (completed, in-progress, available, eligible, recommended, option)
  clear                remove every status filter
  reset                clear the highlighted path
  interest <id>        switch to another career interest
  view                 redraw the columns
  help                 show this help
  q | quit | exit      leave the explorer`

// ExploreOptions selects the session the explorer starts on.
type ExploreOptions struct {
	InterestID int
	// SessionID resumes a stored session instead of opening a new one.
	SessionID string
}

// Explorer is the line-oriented terminal front end of a session.
type Explorer struct {
	sessions *session.Manager
	catalog  ports.CatalogRepository
	out      io.Writer
	render   tui.Renderer
}

// NewExplorer creates an explorer writing to out. render formats Markdown; pass
// tui.NewRenderer(false) for plain output.
func NewExplorer(sessions *session.Manager, catalog ports.CatalogRepository, out io.Writer, render tui.Renderer) *Explorer {
	return &Explorer{
		sessions: sessions,
		catalog:  catalog,
		out:      out,
		render:   render,
	}
}

// Run reads commands from in until EOF, a quit command or ctx cancellation.
// It returns the id of the session it worked on.
func (x *Explorer) Run(ctx context.Context, in io.Reader, opts ExploreOptions) (string, error) {
	var (
		res session.Result
		err error
	)
	if opts.SessionID != "" {
		res, err = x.sessions.View(ctx, opts.SessionID)
	} else {
		res, err = x.sessions.Open(ctx, opts.InterestID)
	}
	if err != nil {
		return "", err
	}
	sid := res.Session.SessionID
	printSystemMessage(x.out, "Session '%s' active. Type 'help' for commands.", sid)
	x.show(ctx, res.View)

	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			return sid, nil
		}
		fmt.Fprint(x.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(x.out)
			return sid, scanner.Err()
		}

		quit, err := x.dispatch(ctx, sid, strings.Fields(scanner.Text()))
		if err != nil {
			if isInterrupted(err) {
				return sid, nil
			}
			fmt.Fprintf(x.out, "error: %s\n", describe(err))
		}
		if quit {
			return sid, nil
		}
	}
}

func (x *Explorer) dispatch(ctx context.Context, sid string, fields []string) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	// A bare number is a click.
	if _, err := strconv.Atoi(cmd); err == nil {
		cmd, args = "select", fields
	}

	switch cmd {
	case "q", "quit", "exit":
		return true, nil
	case "help", "?":
		fmt.Fprintln(x.out, exploreHelp)
		return false, nil
	case "view":
		res, err := x.sessions.View(ctx, sid)
		if err != nil {
			return false, err
		}
		x.show(ctx, res.View)
	case "select":
		id, err := intArg(args)
		if err != nil {
			return false, err
		}
		sel, err := x.sessions.Select(ctx, sid, id)
		if err != nil {
			return false, err
		}
		switch sel.Outcome {
		case pathway.OutcomeDetail:
			x.print(tui.DetailMarkdown(sel.Node))
		default:
			printSystemMessage(x.out, "%s: %s", sel.Outcome, sel.Node.Title)
			x.show(ctx, sel.View)
		}
	case "filter":
		if len(args) != 1 {
			return false, errors.New("usage: filter <status>")
		}
		status, err := domain.ParseStatus(args[0])
		if err != nil {
			return false, err
		}
		res, active, err := x.sessions.ToggleFilter(ctx, sid, status)
		if err != nil {
			return false, err
		}
		state := "off"
		if active {
			state = "on"
		}
		printSystemMessage(x.out, "Filter %s %s", status.Label(), state)
		x.show(ctx, res.View)
	case "clear":
		res, err := x.sessions.ClearFilters(ctx, sid)
		if err != nil {
			return false, err
		}
		x.show(ctx, res.View)
	case "reset":
		res, err := x.sessions.Reset(ctx, sid)
		if err != nil {
			return false, err
		}
		x.show(ctx, res.View)
	case "interest":
		id, err := intArg(args)
		if err != nil {
			return false, err
		}
		if _, err := x.catalog.GetInterest(ctx, id); err != nil {
			return false, err
		}
		res, err := x.sessions.ChangeInterest(ctx, sid, id)
		if err != nil {
			return false, err
		}
		x.show(ctx, res.View)
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return false, nil
}

func (x *Explorer) show(ctx context.Context, view pathway.View) {
	title := fmt.Sprintf("Interest %d", view.InterestID)
	if in, err := x.catalog.GetInterest(ctx, view.InterestID); err == nil {
		title = in.Name
	}
	x.print(tui.ViewMarkdown(title, view))
}

func (x *Explorer) print(markdown string) {
	out, err := x.render(markdown)
	if err != nil {
		out = markdown
	}
	fmt.Fprint(x.out, out)
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("expected a single numeric id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// describe shortens domain errors for the prompt.
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrNodeNotFound):
		return "no such pathway in this interest"
	case errors.Is(err, domain.ErrInterestNotFound):
		return "no such career interest"
	}
	return err.Error()
}
