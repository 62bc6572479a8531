package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/internal/presentation/tui"
	"github.com/aretw0/vitrine/pkg/dialogue"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
)

// ChatOptions configures a terminal chat.
type ChatOptions struct {
	Graph   *dialogue.Graph
	Delays  dialogue.Delays
	Company string

	In  io.Reader
	Out io.Writer

	// Plain disables glamour styling and the banner. It is forced when Out is not a terminal.
	Plain  bool
	Clock  ports.Clock
	Logger *slog.Logger
}

// RunChat walks the graph with the visitor until they quit, input ends or ctx is cancelled.
func RunChat(ctx context.Context, opts ChatOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	renderer := tui.NewPlainRenderer()
	if f, ok := opts.Out.(*os.File); ok && !opts.Plain && term.IsTerminal(int(f.Fd())) {
		width, _, err := term.GetSize(int(f.Fd()))
		if err != nil {
			width = 80
		}
		renderer = tui.NewRenderer(width)
		tui.PrintBanner(opts.Out, opts.Company)
	}

	events := make(chan *domain.DialogueEvent, 64)
	forward := func(_ context.Context, e *domain.DialogueEvent) {
		select {
		case events <- e:
		default:
			opts.Logger.Warn("chat event dropped", "type", e.Type)
		}
	}
	hooks := domain.DialogueHooks{OnMessage: forward, OnEffect: forward}

	engineOpts := []dialogue.Option{
		dialogue.WithDelays(opts.Delays),
		dialogue.WithHooks(hooks),
		dialogue.WithLogger(opts.Logger),
	}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, dialogue.WithClock(opts.Clock))
	}
	engine := dialogue.New(opts.Graph, engineOpts...)
	defer engine.Close()

	if err := engine.Start(); err != nil {
		return err
	}

	lines := bufio.NewScanner(opts.In)
	for {
		if err := waitForPrompt(ctx, events, opts.Out, renderer); err != nil {
			return err
		}
		node := engine.Current()
		fmt.Fprint(opts.Out, renderer.Options(node.View().Options))

		index, err := readChoice(ctx, lines, opts.Out, len(node.Options))
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := engine.Select(ctx, index); err != nil {
			return fmt.Errorf("select option: %w", err)
		}
	}
}

// waitForPrompt prints events until the engine is ready for the next choice:
// a bot message arrived or an effect was dispatched.
func waitForPrompt(ctx context.Context, events <-chan *domain.DialogueEvent, out io.Writer, r *tui.Renderer) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-events:
			switch {
			case e.Type == domain.EventEffect && e.Effect != nil:
				fmt.Fprint(out, r.Effect(*e.Effect))
				return nil
			case e.Message != nil && e.Message.FromBot:
				fmt.Fprint(out, r.Message(*e.Message))
				return nil
			}
		}
	}
}

// readChoice reads until a valid 1-based option number. It returns io.EOF on quit.
func readChoice(ctx context.Context, lines *bufio.Scanner, out io.Writer, n int) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprint(out, "> ")
		if !lines.Scan() {
			if err := lines.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		text := strings.TrimSpace(lines.Text())
		switch strings.ToLower(text) {
		case "q", "quit", "exit":
			return 0, io.EOF
		}
		choice, err := strconv.Atoi(text)
		if err != nil || choice < 1 || choice > n {
			fmt.Fprintf(out, "Please pick a number between 1 and %d.\n", n)
			continue
		}
		return choice - 1, nil
	}
}
