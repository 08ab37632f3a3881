package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestConnector(url string, opts ...HttpOpts) *Connector {
	return NewConnector(&ConnectorConfig{BaseURL: url, Logger: zap.NewNop()}, opts...)
}

func TestDoRequest_JSONRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type: %s", got)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]string{"echo": body["prompt"]})
	}))
	defer server.Close()

	conn := newTestConnector(server.URL, WithRequestLogging())

	var resp map[string]string
	err := conn.DoRequest(context.Background(), http.MethodPost, "/v1/generate", map[string]string{"prompt": "hi"}, &resp)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp["echo"] != "hi" {
		t.Errorf("unexpected response: %v", resp)
	}
}

func TestDoRequest_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("overloaded"))
	}))
	defer server.Close()

	err := newTestConnector(server.URL).DoRequest(context.Background(), http.MethodPost, "/", nil, nil)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable || httpErr.Message != "overloaded" {
		t.Errorf("unexpected error: %+v", httpErr)
	}
	if !IsRetryable(err) {
		t.Error("503 should be retryable")
	}
}

func TestDoRequest_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	var resp map[string]any
	err := newTestConnector(server.URL).DoRequest(context.Background(), http.MethodGet, "/", nil, &resp)

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if IsRetryable(err) {
		t.Error("decode errors should not be retried")
	}
}

func TestDoRequest_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := newTestConnector(url, WithRequestTimeout(time.Second)).DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if !IsRetryable(err) {
		t.Error("network errors should be retryable")
	}
}

func TestDoMultipartRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file: %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		json.NewEncoder(w).Encode(map[string]any{"name": header.Filename, "size": len(data)})
	}))
	defer server.Close()

	var resp struct {
		Name string `json:"name"`
		Size int    `json:"size"`
	}
	err := newTestConnector(server.URL).DoMultipartRequest(context.Background(), http.MethodPost, "/extract",
		func(w *multipart.Writer) error {
			part, err := w.CreateFormFile("file", "paper.pdf")
			if err != nil {
				return err
			}
			_, err = part.Write([]byte("%PDF-1.4"))
			return err
		}, &resp)
	if err != nil {
		t.Fatalf("multipart request failed: %v", err)
	}
	if resp.Name != "paper.pdf" || resp.Size != 8 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAuthTransports(t *testing.T) {
	tests := []struct {
		name   string
		opt    HttpOpts
		header string
		want   string
	}{
		{"bearer", WithAuthToken("secret"), "Authorization", "Bearer secret"},
		{"empty bearer", WithAuthToken(""), "Authorization", ""},
		{"api key", WithAPIKey("x-goog-api-key", "k1"), "x-goog-api-key", "k1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get(tt.header); got != tt.want {
					t.Errorf("header %s = %q, want %q", tt.header, got, tt.want)
				}
			}))
			defer server.Close()

			if err := newTestConnector(server.URL, tt.opt).DoRequest(context.Background(), http.MethodGet, "/", nil, nil); err != nil {
				t.Fatalf("request failed: %v", err)
			}
		})
	}
}

func TestIsRetryable_Context(t *testing.T) {
	if IsRetryable(&NetworkError{Err: context.Canceled}) {
		t.Error("cancelled requests must not be retried")
	}
	if IsRetryable(&HTTPError{StatusCode: http.StatusBadRequest}) {
		t.Error("4xx must not be retried")
	}
	if !IsRetryable(&HTTPError{StatusCode: http.StatusTooManyRequests}) {
		t.Error("429 should be retried")
	}
}

func TestDoRequest_WithHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Prompt-ID"); got != "generate_answer@v1" {
			t.Errorf("unexpected header: %q", got)
		}
	}))
	defer server.Close()

	err := newTestConnector(server.URL).DoRequest(context.Background(), http.MethodPost, "/", nil, nil,
		WithHeader("X-Prompt-ID", "generate_answer@v1"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
}
