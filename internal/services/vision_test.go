package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lostfound/internal/config"
	"lostfound/internal/models"
)

func geminiReply(text string) string {
	resp := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func newTestVision(baseURL, key string) *VisionService {
	return NewVisionService(config.VisionConfig{
		APIKey:  key,
		Model:   "test-model",
		BaseURL: baseURL,
	})
}

func TestAnalyzeImagesEmptyInput(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	s := newTestVision(server.URL, "test-key")
	got := s.AnalyzeImages(context.Background(), nil)
	if got != (Suggestion{}) {
		t.Errorf("expected empty suggestion, got %+v", got)
	}
	if called {
		t.Error("expected no network call for empty input")
	}
}

func TestAnalyzeImagesMissingKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected no network call without a credential")
	}))
	defer server.Close()

	s := newTestVision(server.URL, "")
	got := s.AnalyzeImages(context.Background(), []ImageInput{{Data: []byte("x"), ContentType: "image/png"}})
	if got != (Suggestion{}) {
		t.Errorf("expected empty suggestion, got %+v", got)
	}
}

func TestAnalyzeImagesBundlesAllImages(t *testing.T) {
	var gotParts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 {
			t.Fatalf("expected one content block, got %d", len(req.Contents))
		}
		gotParts = len(req.Contents[0].Parts)

		w.Write([]byte(geminiReply(`{"title":"Red backpack","description":"Red Nike backpack, 20L","category":"red Nike backpack"}`)))
	}))
	defer server.Close()

	s := newTestVision(server.URL, "test-key")
	images := []ImageInput{
		{Data: []byte("front"), ContentType: "image/jpeg"},
		{Data: []byte("back"), ContentType: "image/png"},
		{Data: []byte("strap")},
	}
	got := s.AnalyzeImages(context.Background(), images)

	// One prompt part plus one inline part per image, in a single request.
	if gotParts != 4 {
		t.Errorf("expected 4 parts (prompt + 3 images), got %d", gotParts)
	}
	if got.Title != "Red backpack" {
		t.Errorf("unexpected title %q", got.Title)
	}
	if got.Category != string(models.CategoryBagsAndCarry) {
		t.Errorf("expected normalized category %s, got %q", models.CategoryBagsAndCarry, got.Category)
	}
}

func TestAnalyzeImagesFencedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		text := "Here you go:\n```json\n{\"title\":\"Water bottle\",\"description\":\"Blue steel flask\",\"category\":\"bottle\"}\n```"
		w.Write([]byte(geminiReply(text)))
	}))
	defer server.Close()

	s := newTestVision(server.URL, "test-key")
	got := s.AnalyzeImages(context.Background(), []ImageInput{{Data: []byte("x")}})
	if got.Title != "Water bottle" {
		t.Errorf("unexpected title %q", got.Title)
	}
	if got.Category != string(models.CategoryBottlesAndContainers) {
		t.Errorf("unexpected category %q", got.Category)
	}
}

func TestAnalyzeImagesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := newTestVision(server.URL, "test-key")
	got := s.AnalyzeImages(context.Background(), []ImageInput{{Data: []byte("x")}})
	if got != (Suggestion{}) {
		t.Errorf("expected empty suggestion on HTTP error, got %+v", got)
	}
}

func TestAnalyzeImagesMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiReply("sorry, I cannot identify this item")))
	}))
	defer server.Close()

	s := newTestVision(server.URL, "test-key")
	got := s.AnalyzeImages(context.Background(), []ImageInput{{Data: []byte("x")}})
	if got != (Suggestion{}) {
		t.Errorf("expected empty suggestion on malformed reply, got %+v", got)
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want models.Category
	}{
		{"Electronics", models.CategoryElectronics},
		{"a black laptop sleeve with charger", models.CategoryElectronics},
		{"red Nike backpack", models.CategoryBagsAndCarry},
		{"Sports & Clothing", models.CategorySportsAndClothing},
		{"school PE jersey", models.CategorySportsAndClothing},
		{"stainless steel water bottle", models.CategoryBottlesAndContainers},
		{"student ID card", models.CategoryDocumentsAndIDs},
		{"maths notebook", models.CategoryNotebooksAndBooks},
		{"umbrella", models.CategoryOtherMisc},
		{"", models.CategoryOtherMisc},
	}

	for _, tc := range cases {
		if got := NormalizeCategory(tc.in); got != tc.want {
			t.Errorf("NormalizeCategory(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
