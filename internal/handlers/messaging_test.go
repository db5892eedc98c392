package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"mentorin/server/internal/messaging"
	"mentorin/server/internal/models"

	"github.com/gofiber/fiber/v2"
)

// testIdentity stubs the auth middleware with a fixed caller.
func testIdentity(userID, name, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		c.Locals("name", name)
		c.Locals("role", role)
		return c.Next()
	}
}

func testApp(t *testing.T, repo *messaging.MemoryRepository, userID, name, role string) *fiber.App {
	t.Helper()
	InitMessaging(messaging.NewService(repo, nil))

	app := fiber.New()
	app.Use(testIdentity(userID, name, role))
	app.Get("/messages/conversations", GetConversations)
	app.Get("/messages/unread-count", GetUnreadCount)
	app.Post("/messages", SendMessage)
	app.Get("/messages/:userId", GetThread)
	app.Get("/users/search", SearchUsers)
	return app
}

func seededRepo() *messaging.MemoryRepository {
	repo := messaging.NewMemoryRepository()
	repo.AddUser(models.User{ID: "alice", Email: "alice@example.com", Name: "Alice", Role: models.RoleStudent})
	repo.AddUser(models.User{ID: "bob", Email: "bob@example.com", Name: "Bob", Role: models.RoleMentor})
	return repo
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (int, envelope) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, reqBody)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, env
}

func TestSendMessageEndpoint(t *testing.T) {
	repo := seededRepo()
	app := testApp(t, repo, "alice", "Alice", models.RoleStudent)

	status, env := doJSON(t, app, http.MethodPost, "/messages", SendMessageRequest{
		ReceiverID: "bob",
		Content:    "hello bob",
	})
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", status, env.Error)
	}

	var msg models.Message
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.SenderID != "alice" || msg.ReceiverID != "bob" || msg.IsRead {
		t.Errorf("message = %+v", msg)
	}
	if msg.ReceiverName != "Bob" || msg.ReceiverRole != models.RoleMentor {
		t.Errorf("receiver snapshot = %q/%q", msg.ReceiverName, msg.ReceiverRole)
	}
}

func TestSendMessageRejectsBadInput(t *testing.T) {
	repo := seededRepo()
	app := testApp(t, repo, "alice", "Alice", models.RoleStudent)

	tests := []struct {
		name       string
		req        SendMessageRequest
		wantStatus int
	}{
		{"empty content", SendMessageRequest{ReceiverID: "bob", Content: "  "}, http.StatusBadRequest},
		{"self message", SendMessageRequest{ReceiverID: "alice", Content: "hi"}, http.StatusBadRequest},
		{"unknown receiver", SendMessageRequest{ReceiverID: "nobody", Content: "hi"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doJSON(t, app, http.MethodPost, "/messages", tt.req)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if env.Success {
				t.Error("success = true on a rejected send")
			}
			if env.Error == "" {
				t.Error("error reason missing")
			}
		})
	}
}

func TestThreadAndUnreadFlow(t *testing.T) {
	repo := seededRepo()

	aliceApp := testApp(t, repo, "alice", "Alice", models.RoleStudent)
	for _, content := range []string{"hi", "there"} {
		status, env := doJSON(t, aliceApp, http.MethodPost, "/messages", SendMessageRequest{
			ReceiverID: "bob",
			Content:    content,
		})
		if status != http.StatusCreated {
			t.Fatalf("send %q: status = %d (%s)", content, status, env.Error)
		}
	}

	bobApp := testApp(t, repo, "bob", "Bob", models.RoleMentor)

	status, env := doJSON(t, bobApp, http.MethodGet, "/messages/unread-count", nil)
	if status != http.StatusOK {
		t.Fatalf("unread-count status = %d", status)
	}
	var badge struct {
		UnreadCount int `json:"unreadCount"`
	}
	if err := json.Unmarshal(env.Data, &badge); err != nil {
		t.Fatal(err)
	}
	if badge.UnreadCount != 2 {
		t.Errorf("unread = %d, want 2", badge.UnreadCount)
	}

	// Opening the thread returns it ascending and marks it read.
	status, env = doJSON(t, bobApp, http.MethodGet, "/messages/alice", nil)
	if status != http.StatusOK {
		t.Fatalf("thread status = %d", status)
	}
	var thread []models.Message
	if err := json.Unmarshal(env.Data, &thread); err != nil {
		t.Fatal(err)
	}
	if len(thread) != 2 || thread[0].Content != "hi" || thread[1].Content != "there" {
		t.Fatalf("thread = %+v", thread)
	}
	for _, m := range thread {
		if !m.IsRead {
			t.Errorf("message %q still unread after open", m.Content)
		}
	}

	status, env = doJSON(t, bobApp, http.MethodGet, "/messages/unread-count", nil)
	if status != http.StatusOK {
		t.Fatalf("unread-count status = %d", status)
	}
	if err := json.Unmarshal(env.Data, &badge); err != nil {
		t.Fatal(err)
	}
	if badge.UnreadCount != 0 {
		t.Errorf("unread after open = %d, want 0", badge.UnreadCount)
	}
}

func TestConversationListEndpoint(t *testing.T) {
	repo := seededRepo()
	aliceApp := testApp(t, repo, "alice", "Alice", models.RoleStudent)

	status, env := doJSON(t, aliceApp, http.MethodPost, "/messages", SendMessageRequest{
		ReceiverID: "bob",
		Content:    "hello",
	})
	if status != http.StatusCreated {
		t.Fatalf("send status = %d (%s)", status, env.Error)
	}

	status, env = doJSON(t, aliceApp, http.MethodGet, "/messages/conversations", nil)
	if status != http.StatusOK {
		t.Fatalf("conversations status = %d", status)
	}
	var conversations []models.Conversation
	if err := json.Unmarshal(env.Data, &conversations); err != nil {
		t.Fatal(err)
	}
	if len(conversations) != 1 {
		t.Fatalf("len = %d, want 1", len(conversations))
	}
	if conversations[0].UserID != "bob" || conversations[0].LastMessage != "hello" {
		t.Errorf("conversation = %+v", conversations[0])
	}
}

func TestSearchUsersEndpoint(t *testing.T) {
	repo := seededRepo()
	app := testApp(t, repo, "alice", "Alice", models.RoleStudent)

	status, env := doJSON(t, app, http.MethodGet, fmt.Sprintf("/users/search?q=%s", "example.com"), nil)
	if status != http.StatusOK {
		t.Fatalf("search status = %d", status)
	}
	var results []models.UserSearchResult
	if err := json.Unmarshal(env.Data, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "bob" {
		t.Errorf("results = %+v, want only bob", results)
	}

	// Sub-2-character queries return an empty set, not an error.
	status, env = doJSON(t, app, http.MethodGet, "/users/search?q=a", nil)
	if status != http.StatusOK {
		t.Fatalf("short query status = %d", status)
	}
	if err := json.Unmarshal(env.Data, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("short query results = %+v, want none", results)
	}
}
