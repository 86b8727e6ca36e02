package httpapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	doc, err := os.ReadFile("../../testdata/article.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	h, err := NewHandler(Config{Document: doc})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return h
}

func TestHandler_RenderField(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fields/Article/title", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type: %q", ct)
	}
	for _, want := range []string{`id="title"`, `class="formfield-textfield"`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("expected %s in %s", want, rec.Body.String())
		}
	}
}

func TestHandler_NegotiatesRenderer(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/fields/Article/title", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type: %q", ct)
	}

	req = httptest.NewRequest(http.MethodGet, "/fields/Article/title?renderer=html", nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("explicit renderer should win, got %q", ct)
	}
}

func TestHandler_SubmitValidates(t *testing.T) {
	h := newTestHandler(t)
	cases := []struct {
		name   string
		value  string
		status int
	}{
		{name: "valid", value: "Hello", status: http.StatusOK},
		{name: "too short", value: "Hi", status: http.StatusUnprocessableEntity},
		{name: "bad pattern", value: "hello", status: http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := url.Values{"value": {tc.value}}.Encode()
			req := httptest.NewRequest(http.MethodPost, "/fields/Article/title?renderer=json", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status: want %d, got %d body %s", tc.status, rec.Code, rec.Body.String())
			}
			if rec.Header().Get("Content-Type") != "application/json" {
				t.Fatalf("content type: %q", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestHandler_Errors(t *testing.T) {
	h := newTestHandler(t)
	cases := map[string]int{
		"/fields/Author/title":               http.StatusNotFound,
		"/fields/Article/missing":            http.StatusNotFound,
		"/fields/Article/views":              http.StatusUnprocessableEntity,
		"/fields/Article/title?renderer=pdf": http.StatusNotAcceptable,
	}
	for target, want := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != want {
			t.Fatalf("%s: want %d, got %d", target, want, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("healthz: %d %q", rec.Code, rec.Body.String())
	}

	if _, err := NewHandler(Config{}); err == nil {
		t.Fatalf("expected error without document")
	}
}

func TestRegisterRoutes(t *testing.T) {
	doc, err := os.ReadFile("../../testdata/article.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, " /forms/ ", Config{Document: doc})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/forms/" {
		t.Fatalf("pattern: got %q", pattern)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/forms/fields/Article/title", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", rec.Code, rec.Body.String())
	}

	if _, err := RegisterRoutes(nil, "/forms", Config{Document: doc}); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
