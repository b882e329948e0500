package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecipe(t *testing.T) {
	var gotPath, gotKey string
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		recipe := `{"recipeName":"Köttbullar","portions":4,` +
			`"ingredients":["500 g blandfärs","1 ägg"],` +
			`"instructions":["Blanda färsen","Rulla och stek"]}`
		resp := map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{"text": recipe}},
				},
			}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "gemini-2.5-flash")
	recipe, err := c.GenerateRecipe(context.Background(), "köttbullar med potatismos")
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	cfg := gotReq["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", cfg["responseMimeType"])
	assert.NotNil(t, cfg["responseSchema"])

	assert.Equal(t, "Köttbullar", recipe.RecipeName)
	assert.Equal(t, 4, recipe.Portions)
	assert.Equal(t, "500 g blandfärs\n1 ägg", recipe.IngredientsText())
	assert.Equal(t, "Blanda färsen\nRulla och stek", recipe.InstructionsText())
}

func TestGenerateRecipeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "gemini-2.5-flash")
	_, err := c.GenerateRecipe(context.Background(), "paj")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateRecipeNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "gemini-2.5-flash")
	_, err := c.GenerateRecipe(context.Background(), "paj")
	assert.Error(t, err)
}
