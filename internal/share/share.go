// Package share builds share payloads for shareable notices and hands them
// to the system clipboard.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/matheuscp10/unisports-match-play/internal/core/logging"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

// ErrNotShareable is returned for notices published without the shareable
// capability.
var ErrNotShareable = errors.New("notice is not shareable")

// Payload is what gets shared: a link plus a readable text version for
// targets that cannot take links.
type Payload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// Build creates the payload of n. Match notices link with ?match=<id>, every
// other category with ?notice=<id>.
func Build(n notify.Notice, baseURL string) (Payload, error) {
	if !n.Shareable {
		return Payload{}, fmt.Errorf("share %s: %w", n.ID, ErrNotShareable)
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return Payload{}, fmt.Errorf("share %s: parse base url: %w", n.ID, err)
	}

	key := "notice"
	if n.Category == notify.CategoryMatch {
		key = "match"
	}
	q := u.Query()
	q.Set(key, n.ID)
	u.RawQuery = q.Encode()

	text := n.Title
	if n.Body != "" {
		text += ": " + n.Body
	}

	return Payload{
		Title: n.Title,
		Text:  text,
		URL:   u.String(),
	}, nil
}

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(text)
}

// SystemClipboard returns the OS clipboard.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

// Publisher is the part of notify.Store the Sharer reports through.
type Publisher interface {
	Publish(d notify.Draft) (notify.Notice, error)
}

// Result tells the caller how a share was delivered.
type Result struct {
	Payload Payload
	// Copied is false when the clipboard failed and the readable text was
	// shown instead.
	Copied bool
}

// Sharer copies share links and reports the outcome with a toast.
type Sharer struct {
	clip    Clipboard
	pub     Publisher
	baseURL string
	log     zerolog.Logger
}

// NewSharer creates a Sharer.
func NewSharer(clip Clipboard, pub Publisher, baseURL string) *Sharer {
	return &Sharer{
		clip:    clip,
		pub:     pub,
		baseURL: baseURL,
		log:     logging.Component("share"),
	}
}

// Share copies the link of n to the clipboard and publishes a confirmation
// toast. When the clipboard is unavailable a longer lived toast carrying the
// readable text is published instead and the share still succeeds.
func (s *Sharer) Share(n notify.Notice) (Result, error) {
	p, err := Build(n, s.baseURL)
	if err != nil {
		return Result{}, err
	}

	res := Result{Payload: p, Copied: true}
	toast := notify.Toast("Link Copied! 🔗", "Link has been copied to your clipboard. Share it with friends!")

	if err := s.clip.WriteAll(p.URL); err != nil {
		s.log.Warn().Err(err).Str(logging.FieldNoticeID, n.ID).Msg("clipboard unavailable, falling back to text")
		res.Copied = false
		toast = notify.Draft{
			Category:  notify.CategoryGeneral,
			Title:     "Share " + n.Category.Label(),
			Body:      "Share this: " + p.Text + " " + p.URL,
			Transient: true,
		}
	}

	if _, err := s.pub.Publish(toast); err != nil {
		return res, fmt.Errorf("share %s: %w", n.ID, err)
	}
	return res, nil
}
