package consumer

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeDedupeStore struct {
	seen      map[string]bool
	recordErr error
	removed   []string
}

func newFakeDedupeStore() *fakeDedupeStore {
	return &fakeDedupeStore{seen: map[string]bool{}}
}

func (f *fakeDedupeStore) Record(_ context.Context, eventID string, _ string) (bool, error) {
	if f.recordErr != nil {
		return false, f.recordErr
	}
	if f.seen[eventID] {
		return false, nil
	}
	f.seen[eventID] = true
	return true, nil
}

func (f *fakeDedupeStore) Remove(_ context.Context, eventID string) error {
	delete(f.seen, eventID)
	f.removed = append(f.removed, eventID)
	return nil
}

func testMessage(eventID string) kafka.Message {
	return kafka.Message{
		Topic: "salon.updated.v1",
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(eventID)},
			{Key: "event_type", Value: []byte("salon.updated.v1")},
		},
		Value: []byte(`{}`),
	}
}

func newTestConsumer(store *fakeDedupeStore, handler Handler) *Consumer {
	return &Consumer{
		logger:  slog.Default(),
		inbox:   store,
		handler: handler,
	}
}

func TestProcessCommitsAfterHandlerSuccess(t *testing.T) {
	store := newFakeDedupeStore()
	calls := 0
	c := newTestConsumer(store, func(context.Context, kafka.Message) error {
		calls++
		return nil
	})

	if !c.process(context.Background(), testMessage("evt-1")) {
		t.Fatal("expected commit after successful handler")
	}
	if calls != 1 {
		t.Fatalf("expected 1 handler call, got %d", calls)
	}
}

func TestProcessRetriesAfterHandlerFailure(t *testing.T) {
	store := newFakeDedupeStore()
	calls := 0
	c := newTestConsumer(store, func(context.Context, kafka.Message) error {
		calls++
		if calls == 1 {
			return errors.New("db down")
		}
		return nil
	})

	msg := testMessage("evt-1")
	if c.process(context.Background(), msg) {
		t.Fatal("expected no commit after handler failure")
	}
	if len(store.removed) != 1 || store.removed[0] != "evt-1" {
		t.Fatalf("expected inbox row removed for evt-1, got %v", store.removed)
	}

	// Redelivery of the same event must run the handler again, not be
	// swallowed as a duplicate.
	if !c.process(context.Background(), msg) {
		t.Fatal("expected commit on successful retry")
	}
	if calls != 2 {
		t.Fatalf("expected 2 handler calls, got %d", calls)
	}
}

func TestProcessSkipsDuplicateButCommits(t *testing.T) {
	store := newFakeDedupeStore()
	calls := 0
	c := newTestConsumer(store, func(context.Context, kafka.Message) error {
		calls++
		return nil
	})

	msg := testMessage("evt-1")
	if !c.process(context.Background(), msg) {
		t.Fatal("first delivery should commit")
	}
	if !c.process(context.Background(), msg) {
		t.Fatal("duplicate should still commit its offset")
	}
	if calls != 1 {
		t.Fatalf("expected 1 handler call, got %d", calls)
	}
}

func TestProcessHoldsOffsetWhenInboxUnavailable(t *testing.T) {
	store := newFakeDedupeStore()
	store.recordErr = errors.New("connection refused")
	c := newTestConsumer(store, func(context.Context, kafka.Message) error {
		t.Fatal("handler must not run when the inbox write fails")
		return nil
	})

	if c.process(context.Background(), testMessage("evt-1")) {
		t.Fatal("expected no commit when the inbox write fails")
	}
}
