// Package generate proxies recipe generation to the Gemini API. The service
// holds the API key; clients only send a free-text dish description.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GeneratedRecipe is the structured output the model is asked for.
type GeneratedRecipe struct {
	RecipeName   string   `json:"recipeName"`
	Portions     int      `json:"portions"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// IngredientsText joins the ingredient list into the newline-separated form
// recipes store.
func (r GeneratedRecipe) IngredientsText() string {
	return strings.Join(r.Ingredients, "\n")
}

// InstructionsText joins the instruction steps into the newline-separated
// form recipes store.
func (r GeneratedRecipe) InstructionsText() string {
	return strings.Join(r.Instructions, "\n")
}

// Client calls the generateContent endpoint of one model.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewClient returns a client for the given upstream. An empty baseURL keeps
// the public Gemini endpoint.
func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// request/response shapes for the generateContent call.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// responseSchema constrains the model to the GeneratedRecipe shape.
var responseSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"recipeName":   map[string]any{"type": "STRING"},
		"portions":     map[string]any{"type": "INTEGER"},
		"ingredients":  map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
		"instructions": map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
	},
	"required": []string{"recipeName", "portions", "ingredients", "instructions"},
}

// GenerateRecipe asks the model for a complete recipe in Swedish for the
// described dish.
func (c *Client) GenerateRecipe(ctx context.Context, dish string) (GeneratedRecipe, error) {
	prompt := fmt.Sprintf(
		"Skapa ett recept på svenska för: %s. "+
			"Ange receptets namn, antal portioner, en ingredienslista med mängder "+
			"och en numrerad instruktionslista med tydliga steg.", dish)

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return GeneratedRecipe{}, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return GeneratedRecipe{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return GeneratedRecipe{}, fmt.Errorf("call generation upstream: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return GeneratedRecipe{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return GeneratedRecipe{}, fmt.Errorf("generation upstream returned status %d: %s",
			resp.StatusCode, truncate(string(body), 200))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return GeneratedRecipe{}, fmt.Errorf("decode upstream response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return GeneratedRecipe{}, fmt.Errorf("generation upstream returned no candidates")
	}

	var recipe GeneratedRecipe
	if err := json.Unmarshal([]byte(parsed.Candidates[0].Content.Parts[0].Text), &recipe); err != nil {
		return GeneratedRecipe{}, fmt.Errorf("decode generated recipe: %w", err)
	}
	return recipe, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
