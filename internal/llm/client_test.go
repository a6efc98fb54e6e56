package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChatSendsRequestAndReturnsFirstChoice(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("Authorization = %q", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"first"}},{"message":{"content":"second"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1/", "sk-test", "test-model")
	reply, err := c.Chat(context.Background(), []Message{System("sys"), User("hi")})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if reply != "first" {
		t.Fatalf("reply = %q", reply)
	}
	if got.Model != "test-model" || len(got.Messages) != 2 || got.Messages[1].Role != RoleUser || got.Messages[1].Content != "hi" {
		t.Fatalf("request = %+v", got)
	}
}

func TestChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", "m").Chat(context.Background(), []Message{User("hi")})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || !strings.Contains(apiErr.Body, "bad key") {
		t.Fatalf("APIError = %+v", apiErr)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Fatalf("Error() = %q, want status", err.Error())
	}
}

func TestChatEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", "m").Chat(context.Background(), nil)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("error = %v, want ErrEmptyResponse", err)
	}
}

func TestChatHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient(srv.URL, "k", "m").Chat(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestMessageJSON(t *testing.T) {
	raw, err := json.Marshal(User("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"role":"user","content":"hello"}` {
		t.Fatalf("json = %s", raw)
	}
}
