package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/matheuscp10/unisports-match-play/internal/core/logging"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/styles"
	"github.com/matheuscp10/unisports-match-play/internal/sports"
	"github.com/matheuscp10/unisports-match-play/pkg/iojson"
)

type DemoCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	expiry     time.Duration
}

// NewDemoCmd creates a new demo command
func NewDemoCmd(flags *Flags) *DemoCmd {
	return &DemoCmd{flags: flags}
}

// Register adds the demo command to the application
func (cmd *DemoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "demo",
		Usage:     "Run a scripted notification scenario and print every change",
		UsageText: "unisports demo [--json] [--expiry 2s]",
		Description: `Publishes a booking, a toast and a match into a fresh store, marks the toast
read, waits for it to expire, removes a second toast before its expiry and
finally clears everything. Each store change is printed as it is fanned out.

Use --json for one JSON document per change.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output changes as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.DurationFlag{
				Name:        "expiry",
				Usage:       "how long transient notices live during the demo",
				Value:       2 * time.Second,
				Destination: &cmd.expiry,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DemoCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer
	if out == nil {
		out = os.Stdout
	}

	store := notify.New(
		notify.WithExpiry(cmd.expiry),
		notify.WithLogger(logging.Component("demo")),
	)
	defer store.Close()

	p := newChangePrinter(out, store, cmd.jsonOutput, isTerminal(out))
	d := &demo{
		store:  store,
		print:  p,
		expiry: cmd.expiry,
		wait:   sleepCtx,
	}
	return d.run(ctx)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// demo drives the scripted scenario. wait is swapped for a manual clock in
// tests.
type demo struct {
	store  *notify.Store
	print  *changePrinter
	expiry time.Duration
	wait   func(ctx context.Context, d time.Duration) error
}

func (d *demo) run(ctx context.Context) error {
	tok := d.store.Subscribe(d.print.change)
	defer d.store.Unsubscribe(tok)

	producers := sports.NewProducers(d.store)

	d.print.step("publish a booking, a toast and a match")
	if _, err := producers.FieldBooked(ctx, "Central Park Field A", "Football", "Sunday 15:00"); err != nil {
		return err
	}
	toast, err := producers.PaymentSuccess(ctx)
	if err != nil {
		return err
	}
	if _, err := producers.MatchConfirmed(ctx, "Thunder FC", "Football", "Saturday 10:00"); err != nil {
		return err
	}

	d.print.step("mark the toast read")
	d.store.MarkRead(toast.ID)

	d.print.step("wait for the toast to expire")
	if err := d.wait(ctx, d.expiry+d.expiry/4); err != nil {
		return err
	}

	d.print.step("remove a toast before it expires")
	early, err := d.store.Publish(notify.Toast("Team Followed", "You are now following updates for Spikers"))
	if err != nil {
		return err
	}
	d.store.Remove(early.ID)
	if err := d.wait(ctx, d.expiry+d.expiry/4); err != nil {
		return err
	}

	d.print.step("clear everything")
	d.store.ClearAll()

	d.print.summary()
	return d.print.err()
}

type demoEvent struct {
	Seq      uint64 `json:"seq"`
	Kind     string `json:"kind"`
	ID       string `json:"id,omitempty"`
	Category string `json:"category,omitempty"`
	Title    string `json:"title,omitempty"`
	Count    int    `json:"count,omitempty"`
	Unread   int    `json:"unread"`
	Total    int    `json:"total"`
}

// changePrinter renders store changes as text or JSON lines. change runs on
// whichever goroutine mutated the store, including expiry timers.
type changePrinter struct {
	mu     sync.Mutex
	out    io.Writer
	lines  *iojson.LineWriter
	store  *notify.Store
	styled bool
	events int
	werr   error
}

func newChangePrinter(out io.Writer, store *notify.Store, jsonOutput, styled bool) *changePrinter {
	p := &changePrinter{out: out, store: store, styled: styled && !jsonOutput}
	if jsonOutput {
		p.lines = iojson.NewLineWriter(out)
	}
	return p
}

func (p *changePrinter) change(c notify.Change) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events++

	ev := demoEvent{
		Seq:      c.Seq,
		Kind:     string(c.Kind),
		ID:       c.ID,
		Category: string(c.Notice.Category),
		Title:    c.Notice.Title,
		Count:    c.Count,
		Unread:   p.store.UnreadCount(),
		Total:    p.store.Len(),
	}

	if p.lines != nil {
		p.keep(p.lines.Write(ev))
		return
	}

	kind := fmt.Sprintf("%-9s", ev.Kind)
	subject := ev.Title
	if c.Kind == notify.ChangeCleared {
		subject = fmt.Sprintf("%d notices", ev.Count)
	} else {
		subject = c.Notice.Category.Icon() + " " + subject
	}
	counts := fmt.Sprintf("unread=%d total=%d", ev.Unread, ev.Total)

	if p.styled {
		kind = kindStyle(c.Kind).Render(kind)
		counts = styles.TextMutedStyle.Render(counts)
	}

	_, err := fmt.Fprintf(p.out, "  #%-3d %s %s  %s\n", ev.Seq, kind, subject, counts)
	p.keep(err)
}

func (p *changePrinter) step(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lines != nil {
		return
	}
	if p.styled {
		title = styles.CommandHeaderStyle.Render(title)
	}
	_, err := fmt.Fprintf(p.out, "\n%s\n", title)
	p.keep(err)
}

func (p *changePrinter) summary() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lines != nil {
		return
	}
	_, err := fmt.Fprintf(p.out, "\n%d changes observed\n", p.events)
	p.keep(err)
}

func (p *changePrinter) keep(err error) {
	if err != nil && p.werr == nil {
		p.werr = err
	}
}

func (p *changePrinter) err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.werr != nil {
		return fmt.Errorf("write output: %w", p.werr)
	}
	return nil
}

func kindStyle(k notify.ChangeKind) lipgloss.Style {
	switch k {
	case notify.ChangePublished:
		return styles.TextSuccessStyle
	case notify.ChangeRead:
		return styles.TextPrimaryBoldStyle
	case notify.ChangeExpired:
		return styles.TextWarningStyle
	case notify.ChangeRemoved, notify.ChangeCleared:
		return styles.TextErrorStyle
	default:
		return styles.TextForegroundStyle
	}
}
