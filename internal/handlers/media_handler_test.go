package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMediaHandler_DownloadFile(t *testing.T) {
	store := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080")
	url, _, err := store.Upload(context.Background(), storage.MediaTypeItem, strings.NewReader("image-bytes"), "photo.png")
	require.NoError(t, err)
	path := strings.TrimPrefix(url, "http://localhost:8080/api/v1")

	h := NewMediaHandler(store, zap.NewNop())
	router := newTestRouter(nil, func(r chi.Router) { h.RegisterRoutes(r) })

	t.Run("serves stored file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body, err := io.ReadAll(w.Body)
		require.NoError(t, err)
		assert.Equal(t, "image-bytes", string(body))
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	})

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/item/missing.png", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown media type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/secret/file.png", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// mockPurger is a mock implementation of SessionPurger
type mockPurger struct {
	count int
	err   error
}

func (m *mockPurger) PurgeExpired(ctx context.Context) (int, error) {
	return m.count, m.err
}

func TestSessionCleaningHandler_CleanSessions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewSessionCleaningHandler(&mockPurger{count: 4}, zap.NewNop())
		router := newTestRouter(nil, func(r chi.Router) { h.RegisterRoutes(r) })
		req := httptest.NewRequest(http.MethodGet, "/sessions/clean", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(4), decodeBody(t, w)["deletedCount"])
	})

	t.Run("storage error", func(t *testing.T) {
		h := NewSessionCleaningHandler(&mockPurger{err: errors.New("db down")}, zap.NewNop())
		router := newTestRouter(nil, func(r chi.Router) { h.RegisterRoutes(r) })
		req := httptest.NewRequest(http.MethodGet, "/sessions/clean", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
