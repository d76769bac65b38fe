package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gymlog-backend/internal/config"
	"gymlog-backend/internal/handlers"
	"gymlog-backend/internal/services"
)

type spyProvider struct {
	raw   string
	text  string
	err   error
	calls int
}

func (s *spyProvider) Name() string { return "OpenAI" }

func (s *spyProvider) StructuredRows(ctx context.Context, systemPrompt, input string) ([]byte, error) {
	s.calls++
	if s.raw == "" {
		return nil, s.err
	}
	return []byte(s.raw), s.err
}

func (s *spyProvider) Text(ctx context.Context, systemPrompt, message string) (string, error) {
	s.calls++
	return s.text, s.err
}

func newServer(p services.Provider, configured bool, mode string) http.Handler {
	svc := services.NewChatService(p, services.ChatOptions{
		CredentialEnv: "OPENAI_API_KEY",
		Configured:    configured,
		Timeout:       5 * time.Second,
	})
	return New(handlers.NewChatHandler(svc), mode, 1<<20)
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth_AlwaysOK(t *testing.T) {
	for _, configured := range []bool{true, false} {
		h := newServer(&spyProvider{err: errors.New("down")}, configured, config.ModeStructured)

		rr := do(h, http.MethodGet, "/health", "")

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
		if got := strings.TrimSpace(rr.Body.String()); got != `{"ok":true}` {
			t.Fatalf("unexpected body %s", got)
		}
	}
}

func TestRoot(t *testing.T) {
	rr := do(newServer(&spyProvider{}, true, config.ModeStructured), http.MethodGet, "/", "")

	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != `{"message":"API running"}` {
		t.Fatalf("unexpected response %d %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID on the response")
	}
}

func TestChat_MissingMessageIs422(t *testing.T) {
	spy := &spyProvider{raw: `{"rows":[]}`}
	h := newServer(spy, true, config.ModeStructured)

	rr := do(h, http.MethodPost, "/chat", `{"rows":[]}`)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rr.Code)
	}
	if spy.calls != 0 {
		t.Fatalf("provider should not be called, got %d calls", spy.calls)
	}
}

func TestChat_MissingCredential(t *testing.T) {
	for _, mode := range []string{config.ModeStructured, config.ModeText} {
		spy := &spyProvider{raw: `{"rows":[]}`, text: "hi"}
		h := newServer(spy, false, mode)

		rr := do(h, http.MethodPost, "/chat", `{"message":"bench press 135 for 8"}`)

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected status 500, got %d", mode, rr.Code)
		}
		if got := strings.TrimSpace(rr.Body.String()); got != `{"detail":"OPENAI_API_KEY is not set on the server"}` {
			t.Fatalf("%s: unexpected body %s", mode, got)
		}
		if spy.calls != 0 {
			t.Fatalf("%s: provider should not be called, got %d calls", mode, spy.calls)
		}
	}
}

func TestChat_ProviderFailure(t *testing.T) {
	for _, mode := range []string{config.ModeStructured, config.ModeText} {
		h := newServer(&spyProvider{err: errors.New("read tcp: connection reset by peer")}, true, mode)

		rr := do(h, http.MethodPost, "/chat", `{"message":"bench press 135 for 8"}`)

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected status 500, got %d", mode, rr.Code)
		}
		if got := strings.TrimSpace(rr.Body.String()); got != `{"detail":"OpenAI request failed"}` {
			t.Fatalf("%s: unexpected body %s", mode, got)
		}
	}
}

func TestChat_StructuredEmptyRows(t *testing.T) {
	h := newServer(&spyProvider{raw: `{"rows":[]}`}, true, config.ModeStructured)

	rr := do(h, http.MethodPost, "/chat", `{"message":"just stretching today"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"rows":[]}` {
		t.Fatalf("expected {\"rows\":[]}, got %s", got)
	}
}

func TestChat_StructuredPassThrough(t *testing.T) {
	out := `{"rows":[{"exercise":"bench press","set":1,"weightLbs":"135","reps":"8","notes":""}]}`
	spy := &spyProvider{raw: out}
	h := newServer(spy, true, config.ModeStructured)

	rr := do(h, http.MethodPost, "/chat", `{"message": "bench press 135 for 8", "rows": []}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != out {
		t.Fatalf("expected %s, got %s", out, got)
	}
	if spy.calls != 1 {
		t.Fatalf("expected exactly one provider call, got %d", spy.calls)
	}
}

func TestChat_TextReplyVerbatim(t *testing.T) {
	text := "Nice! Logged bench press: 135 lbs x 8. ✅"
	h := newServer(&spyProvider{text: text}, true, config.ModeText)

	rr := do(h, http.MethodPost, "/chat", `{"message":"bench press 135 for 8"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"reply":"`+text+`"}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestChat_CORSAllowsAnyOrigin(t *testing.T) {
	h := newServer(&spyProvider{raw: `{"rows":[]}`}, true, config.ModeStructured)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Origin", "http://192.168.1.20:8081")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected CORS header on the response")
	}
}
