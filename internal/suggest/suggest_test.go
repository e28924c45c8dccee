package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func fakeGemini(t *testing.T, reply string, gotPrompt *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if gotPrompt != nil && len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			*gotPrompt = req.Contents[0].Parts[0].Text
		}
		_ = json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: reply}}}},
			},
		})
	}))
}

func TestDisabledClient(t *testing.T) {
	c := NewClient("", "gemini-2.5-flash")
	if c.Enabled() {
		t.Error("client with no key reports enabled")
	}
	if _, err := c.SuggestTitle(context.Background(), "broken faucet"); !errors.Is(err, ErrDisabled) {
		t.Errorf("want ErrDisabled, got %v", err)
	}
	if _, err := c.SuggestTags(context.Background(), "broken faucet", nil); !errors.Is(err, ErrDisabled) {
		t.Errorf("want ErrDisabled, got %v", err)
	}
}

func TestSuggestTitleStripsDecoration(t *testing.T) {
	var prompt string
	srv := fakeGemini(t, "  \"Repair *Leaky* Kitchen Faucet\"  ", &prompt)
	defer srv.Close()
	c := NewClient("test-key", "gemini-2.5-flash", WithBaseURL(srv.URL))

	title, err := c.SuggestTitle(context.Background(), "the kitchen faucet drips")
	if err != nil {
		t.Fatalf("SuggestTitle: %v", err)
	}
	if title != "Repair Leaky Kitchen Faucet" {
		t.Errorf("title = %q", title)
	}
	if !strings.Contains(prompt, "the kitchen faucet drips") {
		t.Errorf("prompt missing description: %q", prompt)
	}
}

func TestSuggestTagsFiltersToVocabulary(t *testing.T) {
	srv := fakeGemini(t, `["Plumbing", "Gardening", "Safety"]`, nil)
	defer srv.Close()
	c := NewClient("test-key", "gemini-2.5-flash", WithBaseURL(srv.URL))

	tags, err := c.SuggestTags(context.Background(), "water damage near garden tap", []string{"Plumbing", "Safety", "HVAC"})
	if err != nil {
		t.Fatalf("SuggestTags: %v", err)
	}
	if len(tags) != 2 || tags[0] != "Plumbing" || tags[1] != "Safety" {
		t.Errorf("tags = %v", tags)
	}
}

func TestSuggestTagsBadPayload(t *testing.T) {
	srv := fakeGemini(t, "not json", nil)
	defer srv.Close()
	c := NewClient("test-key", "gemini-2.5-flash", WithBaseURL(srv.URL))

	if _, err := c.SuggestTags(context.Background(), "something broke", []string{"Plumbing"}); err == nil {
		t.Fatal("want parse error")
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()
	c := NewClient("test-key", "gemini-2.5-flash", WithBaseURL(srv.URL))

	if _, err := c.SuggestTitle(context.Background(), "anything"); err == nil {
		t.Fatal("want error for non-200 response")
	}
}

func TestEmptyDescriptionShortCircuits(t *testing.T) {
	// No server: an empty description must not produce a request.
	c := NewClient("test-key", "gemini-2.5-flash", WithBaseURL("http://127.0.0.1:0"))
	title, err := c.SuggestTitle(context.Background(), "   ")
	if err != nil || title != "" {
		t.Errorf("got %q, %v", title, err)
	}
}

func TestDebouncerLatestTokenWins(t *testing.T) {
	var d Debouncer
	first := d.Arm()
	second := d.Arm()

	if d.Current(first) {
		t.Error("superseded token still current")
	}
	if !d.Current(second) {
		t.Error("latest token not current")
	}

	d.Cancel()
	if d.Current(second) {
		t.Error("token current after cancel")
	}
}
