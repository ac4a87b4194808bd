package replicate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateParsesArrayOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("missing auth header, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output": ["https://img.example/out.png"]}`))
	}))
	defer srv.Close()

	c := New("test-token", srv.URL, "some/model")
	url, err := c.Generate(context.Background(), "a dog in a suit")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if url != "https://img.example/out.png" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestGenerateParsesStringOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output": "https://img.example/single.png"}`))
	}))
	defer srv.Close()

	c := New("test-token", srv.URL, "some/model")
	url, err := c.Generate(context.Background(), "a cat in a hat")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if url != "https://img.example/single.png" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestGenerateErrors(t *testing.T) {
	c := New("", "", "")
	if _, err := c.Generate(context.Background(), "anything"); err == nil {
		t.Fatal("missing token should fail")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()
	c = New("test-token", srv.URL, "some/model")
	if _, err := c.Generate(context.Background(), "anything"); err == nil {
		t.Fatal("non-2xx status should fail")
	}

	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output": []}`))
	}))
	defer srv2.Close()
	c = New("test-token", srv2.URL, "some/model")
	if _, err := c.Generate(context.Background(), "anything"); err == nil {
		t.Fatal("empty output should fail")
	}
}
