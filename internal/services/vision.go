package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lostfound/internal/config"
	"lostfound/internal/logger"
	"lostfound/internal/models"
)

// ImageInput is one uploaded photo handed to the vision model.
type ImageInput struct {
	Data        []byte
	ContentType string
}

// Suggestion pre-fills the upload form. All fields may be empty; the client
// never fails item creation.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// VisionService asks a multimodal model to suggest title, description and
// category for a set of item photos. Best effort only: any failure, missing
// credential or empty input degrades to an empty Suggestion.
type VisionService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewVisionService(cfg config.VisionConfig) *VisionService {
	if cfg.APIKey == "" {
		logger.Log.Warn("Vision suggestions disabled: VISION_API_KEY is not set")
	}
	return &VisionService{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Gemini generateContent request/response shapes, reduced to the fields used.
type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature      float64 `json:"temperature"`
		ResponseMimeType string  `json:"response_mime_type"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

const visionPrompt = `You are cataloging lost-and-found items for a school reception desk. ` +
	`You are given one or more photos of the SAME item, possibly from different angles; ` +
	`reconcile them into a single suggestion. Respond with JSON only, exactly this shape:
{ "title": "short, specific title", "description": "detailed description with brand, color, size, model, visible markings", "category": "one of: Electronics, Bags & Carry, Sports & Clothing, Bottles & Containers, Documents & IDs, Notebooks/Books, Other/Misc" }
Formatting rules:
- Electronics: start the description with brand and model, then color and condition.
- If the item is a standard school exercise notebook (plain cover with the school crest), title it "School exercise notebook" and mention the subject label if one is visible.
Do not include any explanation or text outside the JSON. Return only valid JSON.`

// AnalyzeImages bundles every photo into one model request so conflicting or
// complementary details across angles can be reconciled. Empty input or a
// missing credential returns an empty Suggestion without a network call.
func (s *VisionService) AnalyzeImages(ctx context.Context, images []ImageInput) Suggestion {
	empty := Suggestion{}
	if len(images) == 0 || s.apiKey == "" {
		return empty
	}

	parts := make([]geminiPart, 0, len(images)+1)
	parts = append(parts, geminiPart{Text: visionPrompt})
	for _, img := range images {
		contentType := img.ContentType
		if contentType == "" {
			contentType = "image/jpeg"
		}
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MimeType: contentType,
				Data:     base64.StdEncoding.EncodeToString(img.Data),
			},
		})
	}

	var reqBody geminiRequest
	reqBody.Contents = make([]struct {
		Parts []geminiPart `json:"parts"`
	}, 1)
	reqBody.Contents[0].Parts = parts
	reqBody.GenerationConfig.Temperature = 0.4
	reqBody.GenerationConfig.ResponseMimeType = "application/json"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		logger.Log.Errorf("Vision request encode failed: %v", err)
		return empty
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		logger.Log.Errorf("Vision request build failed: %v", err)
		return empty
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Log.Errorf("Vision API call failed: %v", err)
		return empty
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Log.Errorf("Vision response read failed: %v", err)
		return empty
	}

	if resp.StatusCode != http.StatusOK {
		logger.Log.Errorf("Vision API HTTP %d: %.500s", resp.StatusCode, string(body))
		return empty
	}

	var gemini geminiResponse
	if err := json.Unmarshal(body, &gemini); err != nil {
		logger.Log.Errorf("Vision response decode failed: %v", err)
		return empty
	}
	if len(gemini.Candidates) == 0 || len(gemini.Candidates[0].Content.Parts) == 0 {
		logger.Log.Warn("Vision API returned no candidates")
		return empty
	}

	raw := extractJSON(gemini.Candidates[0].Content.Parts[0].Text)
	var suggestion Suggestion
	if err := json.Unmarshal([]byte(raw), &suggestion); err != nil {
		logger.Log.Errorf("Vision suggestion parse failed: %v", err)
		return empty
	}

	suggestion.Title = strings.TrimSpace(suggestion.Title)
	suggestion.Description = strings.TrimSpace(suggestion.Description)
	suggestion.Category = string(NormalizeCategory(suggestion.Category))
	return suggestion
}

// extractJSON pulls the first {...} object out of a model reply, tolerating
// code fences or stray prose around it.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}

var categoryKeywords = []struct {
	category models.Category
	words    []string
}{
	{models.CategoryElectronics, []string{"electronic", "laptop", "phone", "tablet", "charger", "headphone", "earbud", "calculator"}},
	{models.CategoryBagsAndCarry, []string{"bag", "backpack", "carry", "luggage", "pouch"}},
	{models.CategorySportsAndClothing, []string{"sport", "cloth", "shirt", "pants", "jacket", "shoe", "wearable", "jersey", "uniform", "hat", "cap"}},
	{models.CategoryBottlesAndContainers, []string{"bottle", "flask", "container", "tupperware", "lunchbox"}},
	{models.CategoryDocumentsAndIDs, []string{"document", "id", "passport", "license", "card"}},
	{models.CategoryNotebooksAndBooks, []string{"notebook", "book", "diary"}},
}

// NormalizeCategory maps the model's free-text category onto the fixed enum
// by keyword matching, defaulting to Other/Misc.
func NormalizeCategory(value string) models.Category {
	v := strings.ToLower(value)
	for _, entry := range categoryKeywords {
		for _, word := range entry.words {
			if strings.Contains(v, word) {
				return entry.category
			}
		}
	}
	return models.CategoryOtherMisc
}
