package renderer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyammall/stockledger/internal/config"
)

func TestRenderPDFSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, convertPath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(10<<20))
		file, _, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()

		html, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Contains(t, string(html), "Satyam Mall")

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("%PDF-FAKE"))
	}))
	defer srv.Close()

	client := NewClient(config.RendererConfig{BaseURL: srv.URL})

	pdf, err := client.RenderPDF(context.Background(), "<html><body>Satyam Mall</body></html>")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-FAKE", string(pdf))
}

func TestRenderPDFServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "chromium crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(config.RendererConfig{BaseURL: srv.URL})

	_, err := client.RenderPDF(context.Background(), "<html></html>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chromium crashed")
}
