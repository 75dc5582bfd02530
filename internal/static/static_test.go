package static

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

func TestStyleAssetPathIsVersioned(t *testing.T) {
	if !regexp.MustCompile(`^/static/style\.[0-9a-f]{12}\.css$`).MatchString(StyleAssetPath) {
		t.Fatalf("unexpected asset path %q", StyleAssetPath)
	}
}

func TestRegisterServesStylesheet(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, StyleAssetPath, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/css; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cc := rr.Header().Get("Cache-Control"); cc != "public, max-age=31536000, immutable" {
		t.Fatalf("unexpected cache control %q", cc)
	}
	if rr.Body.Len() == 0 {
		t.Fatal("expected stylesheet body")
	}
}
