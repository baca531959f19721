package knowledge

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhad/knowtab/internal/models"
	"github.com/xhad/knowtab/pkg/table"
)

func writeTestPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.pdf")
	err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0644)
	require.NoError(t, err)
	return path
}

func TestClientConfig(t *testing.T) {
	config := ClientConfig{
		BaseURL:    "http://localhost:8000",
		APIVersion: "v2",
		RateLimit:  1.0,
		Timeout:    10 * time.Second,
	}

	c, err := NewWithConfig(config)
	require.NoError(t, err)
	assert.Equal(t, config.BaseURL, c.config.BaseURL)
	assert.Equal(t, "v2", c.config.APIVersion)
	assert.Equal(t, "http://localhost:8000/api/v2/document", c.endpoint("/document"))
}

func TestClientConfigTrailingSlash(t *testing.T) {
	c, err := NewWithConfig(ClientConfig{BaseURL: "http://localhost:8000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1/document", c.endpoint("/document"))
}

func TestClientConfigDefaults(t *testing.T) {
	c, err := NewWithConfig(ClientConfig{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", c.config.BaseURL)
	assert.Equal(t, "v1", c.config.APIVersion)
	assert.Equal(t, 60*time.Second, c.config.Timeout)
}

func TestClientConfigInvalidURL(t *testing.T) {
	_, err := NewWithConfig(ClientConfig{BaseURL: "not-a-url"})
	assert.Error(t, err)
}

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/document", r.URL.Path)

		err := r.ParseMultipartForm(1 << 20)
		require.NoError(t, err)

		// File part carries the PDF content type
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "companies.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))

		// Metadata envelope rides along as a JSON field
		var meta struct {
			Name   string `json:"name"`
			Author string `json:"author"`
			Tag    string `json:"tag"`
		}
		err = json.Unmarshal([]byte(r.FormValue("document")), &meta)
		require.NoError(t, err)
		assert.Equal(t, "companies.pdf", meta.Name)
		assert.Equal(t, "Automated Upload", meta.Author)
		assert.Equal(t, "Company Analysis", meta.Tag)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "doc-123"}`))
	}))
	defer server.Close()

	c, err := NewWithConfig(ClientConfig{BaseURL: server.URL, RateLimit: 100})
	require.NoError(t, err)

	id, err := c.Upload(context.Background(), writeTestPDF(t))
	require.NoError(t, err)
	assert.Equal(t, "doc-123", id)
}

func TestUploadCustomMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseMultipartForm(1 << 20)
		require.NoError(t, err)

		var meta struct {
			Author string `json:"author"`
			Tag    string `json:"tag"`
		}
		err = json.Unmarshal([]byte(r.FormValue("document")), &meta)
		require.NoError(t, err)
		assert.Equal(t, "Research Desk", meta.Author)
		assert.Equal(t, "Q3 Screening", meta.Tag)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "doc-456"}`))
	}))
	defer server.Close()

	c, err := NewWithConfig(ClientConfig{
		BaseURL:   server.URL,
		RateLimit: 100,
		Author:    "Research Desk",
		Tag:       "Q3 Screening",
	})
	require.NoError(t, err)

	id, err := c.Upload(context.Background(), writeTestPDF(t))
	require.NoError(t, err)
	assert.Equal(t, "doc-456", id)
}

func TestUploadFailureSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "unsupported file type"}`))
	}))
	defer server.Close()

	c, err := NewWithConfig(ClientConfig{BaseURL: server.URL, RateLimit: 100})
	require.NoError(t, err)

	_, err = c.Upload(context.Background(), writeTestPDF(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload document")
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestUploadMissingFile(t *testing.T) {
	c := New("http://localhost:8000")
	_, err := c.Upload(context.Background(), "/no/such/file.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open PDF")
}

func TestChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/document/doc-123/chunks", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"content": "Acme Corp\nBeta Inc"}, {"content": "Gamma Ltd"}]`))
	}))
	defer server.Close()

	c, err := NewWithConfig(ClientConfig{BaseURL: server.URL, RateLimit: 100})
	require.NoError(t, err)

	chunks, err := c.Chunks(context.Background(), "doc-123")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "Acme Corp\nBeta Inc", chunks[0].Content)
	assert.Equal(t, "Gamma Ltd", chunks[1].Content)
}

func TestChunksFailureSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "document not found"}`))
	}))
	defer server.Close()

	c, err := NewWithConfig(ClientConfig{BaseURL: server.URL, RateLimit: 100})
	require.NoError(t, err)

	_, err = c.Chunks(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get document chunks")
	assert.Contains(t, err.Error(), "document not found")
}

func TestGenerateCells(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/query/generate-cells", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload struct {
			Columns []models.Column `json:"columns"`
			Rows    []models.Row    `json:"rows"`
		}
		err := json.NewDecoder(r.Body).Decode(&payload)
		require.NoError(t, err)
		assert.Len(t, payload.Columns, 1)
		assert.Len(t, payload.Rows, 1)
		assert.Equal(t, "row_0_0", payload.Rows[0].ID)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"cells": [{"rowId": "row_0_0", "columnId": "is_tech", "answer": "Y"}]}`))
	}))
	defer server.Close()

	c, err := NewWithConfig(ClientConfig{BaseURL: server.URL, RateLimit: 100})
	require.NoError(t, err)

	columns := []models.Column{{ID: "is_tech", EntityType: "Company", Type: "boolean", Generate: true}}
	rows := []models.Row{{ID: "row_0_0", SourceData: "Acme Corp", Cells: map[string]string{}}}

	cells, err := c.GenerateCells(context.Background(), columns, rows)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, "row_0_0", cells[0].RowID)
	assert.Equal(t, "is_tech", cells[0].ColumnID)
	assert.Equal(t, models.Answer("Y"), cells[0].Answer)
}

// A document with no usable lines still produces a valid request: the
// rows field must go out as [], not null.
func TestGenerateCellsEmptyRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"rows":[]`)
		assert.NotContains(t, string(body), `"rows":null`)
		assert.NotContains(t, string(body), `"columns":null`)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"cells": []}`))
	}))
	defer server.Close()

	c, err := NewWithConfig(ClientConfig{BaseURL: server.URL, RateLimit: 100})
	require.NoError(t, err)

	cells, err := c.GenerateCells(context.Background(), table.Columns(), table.Rows(nil))
	require.NoError(t, err)
	assert.Empty(t, cells)
}

func TestGenerateCellsFailureSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("inference backend unavailable"))
	}))
	defer server.Close()

	c, err := NewWithConfig(ClientConfig{BaseURL: server.URL, RateLimit: 100})
	require.NoError(t, err)

	_, err = c.GenerateCells(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate cells")
	assert.Contains(t, err.Error(), "inference backend unavailable")
}
