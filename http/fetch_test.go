package http_test

import (
	"bytes"
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gridhttp "github.com/meigma/gridzip/http"
)

func TestFetch_ReturnsBody(t *testing.T) {
	t.Parallel()

	body := bytes.Repeat([]byte("png-bytes"), 100)
	var gotEncoding, gotAuth string
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotEncoding = r.Header.Get("Accept-Encoding")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)

	data, err := gridhttp.Fetch(context.Background(), server.URL,
		gridhttp.WithHeader("Authorization", "Bearer token"),
	)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !bytes.Equal(data, body) {
		t.Fatalf("Fetch() returned %d bytes, want %d", len(data), len(body))
	}
	if gotEncoding != "identity" {
		t.Errorf("Accept-Encoding = %q, want identity", gotEncoding)
	}
	if gotAuth != "Bearer token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestFetch_RejectsNonOK(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	_, err := gridhttp.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Fetch() expected error for 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error %q does not mention status", err)
	}
}

func TestFetch_RejectsDeclaredOversize(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write(bytes.Repeat([]byte{0x42}, 100))
	}))
	t.Cleanup(server.Close)

	_, err := gridhttp.Fetch(context.Background(), server.URL, gridhttp.WithMaxBytes(16))
	if !errors.Is(err, gridhttp.ErrTooLarge) {
		t.Fatalf("Fetch() error = %v, want ErrTooLarge", err)
	}
}

func TestFetch_RejectsUnknownLengthOversize(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		// Flush after the first chunk so no Content-Length is sent.
		_, _ = w.Write([]byte("0123456789"))
		w.(nethttp.Flusher).Flush()
		_, _ = w.Write(bytes.Repeat([]byte{0x42}, 100))
	}))
	t.Cleanup(server.Close)

	_, err := gridhttp.Fetch(context.Background(), server.URL, gridhttp.WithMaxBytes(32))
	if !errors.Is(err, gridhttp.ErrTooLarge) {
		t.Fatalf("Fetch() error = %v, want ErrTooLarge", err)
	}
}

func TestFetch_ExactCapAccepted(t *testing.T) {
	t.Parallel()

	body := bytes.Repeat([]byte{0x7F}, 32)
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)

	data, err := gridhttp.Fetch(context.Background(), server.URL, gridhttp.WithMaxBytes(32))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(data) != 32 {
		t.Fatalf("Fetch() returned %d bytes, want 32", len(data))
	}
}

func TestFetch_CanceledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte("never read"))
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gridhttp.Fetch(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Fetch() error = %v, want context.Canceled", err)
	}
}
