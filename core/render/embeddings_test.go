package render

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/mailpipe/core"
)

func TestEmbeddingsRenderer_Render(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotModel = req.Model
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	r := NewEmbeddingsRenderer("nomic-embed-text", 512, srv.URL)
	out, err := r.Render("hello embedding world", core.DocMetadata{Source: "mail.html"})
	require.NoError(t, err)

	text := string(out)
	assert.Equal(t, "nomic-embed-text", gotModel)
	assert.Contains(t, text, "# source: mail.html")
	assert.Contains(t, text, "# model: nomic-embed-text")
	assert.Contains(t, text, "--- chunk 1 ---")
	assert.Contains(t, text, "hello embedding world")
	assert.Contains(t, text, "[0.1000, 0.2000, 0.3000]")
}

func TestEmbeddingsRenderer_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewEmbeddingsRenderer("missing-model", 512, srv.URL)
	_, err := r.Render("some text", core.DocMetadata{Source: "mail.html"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestEmbeddingsRenderer_EmptyContent(t *testing.T) {
	r := NewEmbeddingsRenderer("nomic-embed-text", 512, "")
	_, err := r.Render("", core.DocMetadata{})
	require.Error(t, err)
}

func TestEmbeddingsRenderer_DefaultEndpoint(t *testing.T) {
	r := NewEmbeddingsRenderer("m", 512, "")
	assert.Equal(t, defaultEmbedURL, r.Endpoint)

	r = NewEmbeddingsRenderer("m", 512, "http://embed.internal:9090/api/embeddings")
	assert.Equal(t, "http://embed.internal:9090/api/embeddings", r.Endpoint)
}
