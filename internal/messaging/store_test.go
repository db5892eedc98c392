package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"mentorin/server/internal/models"
)

func seedDirectory(repo *MemoryRepository) {
	repo.AddUser(models.User{ID: "alice", Email: "alice@example.com", Name: "Alice", Role: models.RoleStudent})
	repo.AddUser(models.User{ID: "bob", Email: "bob@example.com", Name: "Bob", Role: models.RoleMentor})
	repo.AddUser(models.User{ID: "carol", Email: "carol@example.com", Name: "Carol", Role: models.RoleMentor})
}

func testStore(t *testing.T) (*Store, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	seedDirectory(repo)
	return NewStore(repo), repo
}

func mustSend(t *testing.T, store *Store, senderID, receiverID, content string) *models.Message {
	t.Helper()
	msg, err := store.Send(context.Background(), SendInput{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	})
	if err != nil {
		t.Fatalf("Send(%s -> %s): %v", senderID, receiverID, err)
	}
	return msg
}

func TestSendValidation(t *testing.T) {
	store, _ := testStore(t)

	tests := []struct {
		name string
		in   SendInput
	}{
		{"empty content", SendInput{SenderID: "alice", ReceiverID: "bob", Content: ""}},
		{"whitespace content", SendInput{SenderID: "alice", ReceiverID: "bob", Content: "   \t"}},
		{"self message", SendInput{SenderID: "alice", ReceiverID: "alice", Content: "hello"}},
		{"missing sender", SendInput{ReceiverID: "bob", Content: "hello"}},
		{"missing receiver", SendInput{SenderID: "alice", Content: "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Send(context.Background(), tt.in)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("got %v, want ValidationError", err)
			}
		})
	}
}

func TestSendUnknownReceiver(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.Send(context.Background(), SendInput{
		SenderID:   "alice",
		ReceiverID: "nobody",
		Content:    "hello",
	})
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if notFoundErr.ID != "nobody" {
		t.Errorf("ID = %q, want nobody", notFoundErr.ID)
	}
}

func TestSendCreatesUnreadMessage(t *testing.T) {
	store, _ := testStore(t)

	msg, err := store.Send(context.Background(), SendInput{
		SenderID:   "alice",
		SenderName: "Alice",
		SenderRole: models.RoleStudent,
		ReceiverID: "bob",
		Content:    "  hello bob  ",
	})
	if err != nil {
		t.Fatal(err)
	}

	if msg.ID == "" {
		t.Error("message has no ID")
	}
	if msg.Content != "hello bob" {
		t.Errorf("content = %q, want trimmed %q", msg.Content, "hello bob")
	}
	if msg.IsRead {
		t.Error("new message must start unread")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}
	// Receiver identity snapshotted from the directory.
	if msg.ReceiverName != "Bob" || msg.ReceiverRole != models.RoleMentor {
		t.Errorf("receiver snapshot = %q/%q, want Bob/mentor", msg.ReceiverName, msg.ReceiverRole)
	}
}

func TestThreadOrderingPreservesInsertionOnEqualTimestamps(t *testing.T) {
	store, _ := testStore(t)

	// Freeze the clock so both messages collide on createdAt.
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	m1 := mustSend(t, store, "alice", "bob", "first")
	m2 := mustSend(t, store, "alice", "bob", "second")

	thread, err := store.ThreadBetween(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(thread) != 2 {
		t.Fatalf("len = %d, want 2", len(thread))
	}
	if thread[0].ID != m1.ID || thread[1].ID != m2.ID {
		t.Errorf("order = [%s %s], want [%s %s]", thread[0].Content, thread[1].Content, m1.Content, m2.Content)
	}
}

func TestThreadIsAscendingAndPairSymmetric(t *testing.T) {
	store, _ := testStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	store.now = func() time.Time { return clock }

	mustSend(t, store, "alice", "bob", "one")
	clock = base.Add(time.Minute)
	mustSend(t, store, "bob", "alice", "two")
	clock = base.Add(2 * time.Minute)
	mustSend(t, store, "alice", "bob", "three")
	// A message with a third party must not leak into the thread.
	mustSend(t, store, "alice", "carol", "other")

	forward, err := store.ThreadBetween(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatal(err)
	}
	reverse, err := store.ThreadBetween(context.Background(), "bob", "alice")
	if err != nil {
		t.Fatal(err)
	}

	if len(forward) != 3 {
		t.Fatalf("len = %d, want 3", len(forward))
	}
	for i := 1; i < len(forward); i++ {
		if forward[i].CreatedAt.Before(forward[i-1].CreatedAt) {
			t.Errorf("thread not ascending at index %d", i)
		}
	}
	if len(reverse) != len(forward) {
		t.Fatalf("pair order changed the thread: %d vs %d messages", len(reverse), len(forward))
	}
	for i := range forward {
		if forward[i].ID != reverse[i].ID {
			t.Errorf("index %d: %s vs %s", i, forward[i].ID, reverse[i].ID)
		}
	}
}

func TestMarkThreadReadIsIdempotent(t *testing.T) {
	store, _ := testStore(t)

	mustSend(t, store, "alice", "bob", "hi")
	mustSend(t, store, "alice", "bob", "there")
	// Bob's own outbound message must stay untouched.
	mustSend(t, store, "bob", "alice", "hey")

	marked, err := store.MarkThreadRead(context.Background(), "bob", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if marked != 2 {
		t.Errorf("first mark = %d, want 2", marked)
	}

	marked, err = store.MarkThreadRead(context.Background(), "bob", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if marked != 0 {
		t.Errorf("second mark = %d, want 0", marked)
	}

	thread, err := store.ThreadBetween(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range thread {
		if m.ReceiverID == "bob" && !m.IsRead {
			t.Errorf("message %q still unread for bob", m.Content)
		}
		if m.ReceiverID == "alice" && m.IsRead {
			t.Errorf("message %q to alice was wrongly marked", m.Content)
		}
	}
}

func TestCountUnreadSpansAllCounterparts(t *testing.T) {
	store, _ := testStore(t)

	mustSend(t, store, "alice", "bob", "one")
	mustSend(t, store, "carol", "bob", "two")
	mustSend(t, store, "carol", "bob", "three")
	mustSend(t, store, "bob", "alice", "reply")

	count, err := store.CountUnread(context.Background(), "bob")
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("unread = %d, want 3", count)
	}

	if _, err := store.MarkThreadRead(context.Background(), "bob", "carol"); err != nil {
		t.Fatal(err)
	}
	count, err = store.CountUnread(context.Background(), "bob")
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("unread after reading carol = %d, want 1", count)
	}
}
