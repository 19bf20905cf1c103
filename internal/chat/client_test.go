package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientAskSuccess(t *testing.T) {
	var gotPath string
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body struct {
			UserQuery string `json:"user_query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		gotQuery = body.UserQuery
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("- **Title:** Dune"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	got, err := client.Ask(context.Background(), "recommend sci-fi")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "- **Title:** Dune" {
		t.Errorf("expected body verbatim, got %q", got)
	}
	if gotPath != "/api/openai/response" {
		t.Errorf("expected request to /api/openai/response, got %s", gotPath)
	}
	if gotQuery != "recommend sci-fi" {
		t.Errorf("expected user_query forwarded, got %q", gotQuery)
	}
}

func TestClientAskEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	got, err := client.Ask(context.Background(), "anything")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "" {
		t.Errorf("expected empty body, got %q", got)
	}
}

func TestClientAskNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Ask(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestClientAskConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	if _, err := client.Ask(context.Background(), "anything"); err == nil {
		t.Fatal("expected error when server is unreachable")
	}
}

func TestReply(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want string
	}{
		{"body verbatim", "Here you go", nil, "Here you go"},
		{"empty body", "", nil, NoResponseText},
		{"request error", "ignored", errors.New("dial failed"), RequestErrorText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reply(tt.body, tt.err); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
