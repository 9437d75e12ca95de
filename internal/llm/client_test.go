package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Options{APIKey: "test-key", BaseURL: server.URL + "/"})
}

func TestRespondSendsStrictSchema(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/responses" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"output_text":"{\"ok\":true}"}`))
	})

	text, err := client.Respond(context.Background(), Request{
		Name:            "probe",
		Schema:          map[string]any{"type": "object"},
		Messages:        []Message{{Role: "system", Content: "hi"}},
		Temperature:     0.4,
		MaxOutputTokens: 100,
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if text != `{"ok":true}` {
		t.Fatalf("unexpected text %q", text)
	}

	format := got["text"].(map[string]any)["format"].(map[string]any)
	if format["type"] != "json_schema" || format["strict"] != true || format["name"] != "probe" {
		t.Fatalf("unexpected format %v", format)
	}
	if got["model"] != DefaultModel {
		t.Fatalf("expected default model, got %v", got["model"])
	}
}

func TestRespondExtractsFromOutputItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"output_text": "  ",
			"output": [
				{"content": [{"type": "reasoning", "text": "skip me"}]},
				{"content": [{"type": "output_text", "text": ""}, {"type": "output_text", "text": "second"}]}
			]
		}`))
	})

	text, err := client.Respond(context.Background(), Request{Name: "x"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if text != "second" {
		t.Fatalf("expected first non-empty output_text, got %q", text)
	}
}

func TestRespondErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"api error message", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, "bad key"},
		{"top-level message", http.StatusTooManyRequests, `{"message":"slow down"}`, "slow down"},
		{"no body", http.StatusInternalServerError, `oops`, "model API error (status 500)"},
		{"no output", http.StatusOK, `{"output":[]}`, "no text output received from the model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := client.Respond(context.Background(), Request{Name: "x"})
			var upstream *UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upstream.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", upstream.Message, tt.wantMsg)
			}
		})
	}
}

func TestRespondJSONRejectsInvalidOutput(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"output_text":"not json"}`))
	})
	var out map[string]any
	err := client.RespondJSON(context.Background(), Request{Name: "x"}, &out)
	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.Message != "model returned invalid JSON" {
		t.Fatalf("expected invalid JSON upstream error, got %v", err)
	}
}

func TestRespondMissingKey(t *testing.T) {
	client := NewClient(Options{})
	if _, err := client.Respond(context.Background(), Request{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
