package event

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rankeditor/backend/internal/domain/shared"
)

// journalRecord is one line of an event journal
type journalRecord struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Journal is a wildcard handler that appends every event it sees to w as
// one JSON object per line.
type Journal struct {
	mu         sync.Mutex
	w          io.Writer
	serializer *EventSerializer
}

// NewJournal creates a journal writing to w
func NewJournal(w io.Writer, serializer *EventSerializer) *Journal {
	return &Journal{w: w, serializer: serializer}
}

// Handle writes the event as a journal line
func (j *Journal) Handle(_ context.Context, event shared.DomainEvent) error {
	payload, err := j.serializer.Serialize(event)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", event.EventType(), err)
	}
	line, err := json.Marshal(journalRecord{Type: event.EventType(), Payload: payload})
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}

// EventTypes returns nil so the journal receives all events
func (j *Journal) EventTypes() []string {
	return nil
}

// ReadJournal decodes a journal written by Journal. Every event type in it
// must be registered with serializer.
func ReadJournal(r io.Reader, serializer *EventSerializer) ([]shared.DomainEvent, error) {
	var events []shared.DomainEvent
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var rec journalRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("journal line %d: %w", line, err)
		}
		event, err := serializer.Deserialize(rec.Type, rec.Payload)
		if err != nil {
			return nil, fmt.Errorf("journal line %d: %w", line, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

var _ shared.EventHandler = (*Journal)(nil)
