package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPNotifierPostsJSON(t *testing.T) {
	received := make(chan Message, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		var msg Message
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decode body: %v", err)
		}
		received <- msg
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewHTTPNotifier(srv.URL+"/sendNotification", time.Second)
	if err := n.Send(context.Background(), Message{Email: "alice@example.com", Message: LoginSucceeded}); err != nil {
		t.Fatalf("send: %v", err)
	}

	msg := <-received
	if msg.Email != "alice@example.com" || msg.Message != LoginSucceeded {
		t.Fatalf("unexpected payload %+v", msg)
	}
}

func TestHTTPNotifierNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	n := NewHTTPNotifier(srv.URL, time.Second)
	err := n.Send(context.Background(), Message{Email: "a@example.com", Message: LoginSucceeded})
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestHTTPNotifierTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewHTTPNotifier(srv.URL, 50*time.Millisecond)
	start := time.Now()
	if err := n.Send(context.Background(), Message{Email: "a@example.com", Message: LoginSucceeded}); err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Fatalf("send was not bounded by timeout, took %s", elapsed)
	}
}

func TestHTTPNotifierConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	n := NewHTTPNotifier(url, time.Second)
	if err := n.Send(context.Background(), Message{Email: "a@example.com", Message: LoginSucceeded}); err == nil {
		t.Fatalf("expected transport error")
	}
}
