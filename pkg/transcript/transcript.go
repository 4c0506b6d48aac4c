// Package transcript turns agent events into the lines a learner reads and
// keeps them for later review.
package transcript

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/boristopalov/agentlab/pkg/messaging"
	"github.com/rs/zerolog"
)

// Entry is one rendered agent event.
type Entry struct {
	Session   string
	AgentID   string
	AgentName string
	Kind      messaging.Kind
	Content   string
	CreatedAt time.Time
}

// Sink receives transcript entries.
type Sink interface {
	Record(e Entry) error
}

// FromMessage renders a broker message as an entry of session.
func FromMessage(session string, msg messaging.Message) Entry {
	createdAt := msg.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return Entry{
		Session:   session,
		AgentID:   msg.From,
		AgentName: msg.Name,
		Kind:      msg.Kind,
		Content:   fmt.Sprint(msg.Content),
		CreatedAt: createdAt.UTC(),
	}
}

// Line formats an entry the way the course narrates agents.
func Line(e Entry) string {
	switch e.Kind {
	case messaging.KindPerceive:
		return fmt.Sprintf("%s perceives: %s", e.AgentName, e.Content)
	case messaging.KindUpdate:
		return fmt.Sprintf("%s updated state: %s", e.AgentName, e.Content)
	case messaging.KindDecide:
		return fmt.Sprintf("%s decides to: %s", e.AgentName, e.Content)
	default:
		return fmt.Sprintf("%s %s: %s", e.AgentName, e.Kind, e.Content)
	}
}

// Printer writes one line per entry.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Record(e Entry) error {
	_, err := fmt.Fprintln(p.w, Line(e))
	return err
}

// Listen feeds every message from ch to sinks until ch is closed or ctx is
// done. A failing sink is logged and does not stop the others.
func Listen(ctx context.Context, session string, ch <-chan messaging.Message, logger zerolog.Logger, sinks ...Sink) error {
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			entry := FromMessage(session, msg)
			for _, s := range sinks {
				if err := s.Record(entry); err != nil {
					logger.Error().Err(err).Str("session", session).Msg("failed to record transcript entry")
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
