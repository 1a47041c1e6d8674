package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/models"
	"github.com/recyclerewards/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockItemService is a mock implementation of ItemService
type mockItemService struct {
	item      *models.RecycleItem
	items     []models.RecycleItem
	history   *models.ItemHistory
	err       error
	dateRange string
	itemType  string
	deleted   int
}

func (m *mockItemService) ListItems(ctx context.Context, userID int) ([]models.RecycleItem, error) {
	return m.items, m.err
}

func (m *mockItemService) GetItem(ctx context.Context, userID, itemID int) (*models.RecycleItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.item, nil
}

func (m *mockItemService) History(ctx context.Context, userID int, dateRange, itemType string) (*models.ItemHistory, error) {
	m.dateRange, m.itemType = dateRange, itemType
	if m.err != nil {
		return nil, m.err
	}
	return m.history, nil
}

func (m *mockItemService) UpdateItem(ctx context.Context, userID, itemID int, req *models.UpdateItemRequest) (*models.RecycleItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.item.Description = req.Description
	return m.item, nil
}

func (m *mockItemService) DeleteItem(ctx context.Context, userID, itemID int) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = itemID
	return nil
}

// mockSubmitter is a mock implementation of ItemSubmitter
type mockSubmitter struct {
	err       error
	request   *models.SubmitItemRequest
	imageData []byte
}

func (m *mockSubmitter) SubmitItem(ctx context.Context, userID int, req *models.SubmitItemRequest, image *services.ImageUpload) (*models.RecycleItem, int, int, error) {
	m.request = req
	if image != nil {
		m.imageData, _ = io.ReadAll(image.Reader)
	}
	if m.err != nil {
		return nil, 0, 0, m.err
	}
	return &models.RecycleItem{ID: 1, UserID: userID, Status: models.ItemStatusPending}, 300, 340, nil
}

func newItemRouter(items *mockItemService, submitter *mockSubmitter) http.Handler {
	h := NewItemHandler(items, submitter, zap.NewNop())
	return newTestRouter(&models.User{ID: 7, Role: models.RoleUser}, func(r chi.Router) { h.RegisterRoutes(r) })
}

func itemForm(t *testing.T, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("itemType", "Plastic"))
	require.NoError(t, writer.WriteField("itemDescription", "bottles"))
	require.NoError(t, writer.WriteField("itemCondition", "new"))
	require.NoError(t, writer.WriteField("itemWeight", "1.5"))
	if withImage {
		part, err := writer.CreateFormFile("image", "bottle.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-data"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestItemHandler_SubmitItem(t *testing.T) {
	t.Run("success with image", func(t *testing.T) {
		submitter := &mockSubmitter{}
		body, contentType := itemForm(t, true)
		req := httptest.NewRequest(http.MethodPost, "/items", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		newItemRouter(&mockItemService{}, submitter).ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, "Item added successfully", resp["message"])
		assert.Equal(t, float64(300), resp["pointsEarned"])
		assert.Equal(t, float64(340), resp["newTotalPoints"])
		assert.Equal(t, &models.SubmitItemRequest{ItemType: "Plastic", Description: "bottles", Condition: "new", Weight: "1.5"}, submitter.request)
		assert.Equal(t, []byte("png-data"), submitter.imageData)
	})

	t.Run("without image", func(t *testing.T) {
		submitter := &mockSubmitter{}
		body, contentType := itemForm(t, false)
		req := httptest.NewRequest(http.MethodPost, "/items", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		newItemRouter(&mockItemService{}, submitter).ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Nil(t, submitter.imageData)
	})

	errorCases := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{name: "file too large", err: models.ErrFileTooLarge, expectedStatus: http.StatusBadRequest, expectedMessage: "File size exceeds 2MB"},
		{name: "upload failure", err: models.ErrUpstreamService, expectedStatus: http.StatusInternalServerError, expectedMessage: "Error uploading image"},
		{name: "missing fields", err: models.NewValidationError("All fields are required"), expectedStatus: http.StatusBadRequest, expectedMessage: "All fields are required"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := itemForm(t, true)
			req := httptest.NewRequest(http.MethodPost, "/items", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			newItemRouter(&mockItemService{}, &mockSubmitter{err: tt.err}).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMessage, decodeBody(t, w)["message"])
		})
	}

	t.Run("not a multipart form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/items", stringsReader(`{"itemType":"Plastic"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newItemRouter(&mockItemService{}, &mockSubmitter{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestItemHandler_History(t *testing.T) {
	items := &mockItemService{history: &models.ItemHistory{Summary: models.ItemHistorySummary{TotalItems: 2}}}
	req := httptest.NewRequest(http.MethodGet, "/items/history?dateRange=30&itemType=Metal", nil)
	w := httptest.NewRecorder()

	newItemRouter(items, &mockSubmitter{}).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "30", items.dateRange)
	assert.Equal(t, "Metal", items.itemType)
}

func TestItemHandler_GetItem(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		err            error
		expectedStatus int
	}{
		{name: "found", path: "/items/4", expectedStatus: http.StatusOK},
		{name: "not found", path: "/items/4", err: models.ErrNotFound, expectedStatus: http.StatusNotFound},
		{name: "invalid id", path: "/items/abc", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := &mockItemService{item: &models.RecycleItem{ID: 4, UserID: 7}, err: tt.err}
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			newItemRouter(items, &mockSubmitter{}).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestItemHandler_UpdateAndDelete(t *testing.T) {
	t.Run("update", func(t *testing.T) {
		items := &mockItemService{item: &models.RecycleItem{ID: 4, UserID: 7}}
		req := httptest.NewRequest(http.MethodPut, "/items/4", stringsReader(`{"itemDescription":"crushed"}`))
		w := httptest.NewRecorder()

		newItemRouter(items, &mockSubmitter{}).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Updated successfully", decodeBody(t, w)["message"])
		assert.Equal(t, "crushed", items.item.Description)
	})

	t.Run("delete", func(t *testing.T) {
		items := &mockItemService{}
		req := httptest.NewRequest(http.MethodDelete, "/items/4", nil)
		w := httptest.NewRecorder()

		newItemRouter(items, &mockSubmitter{}).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 4, items.deleted)
	})

	t.Run("delete missing", func(t *testing.T) {
		items := &mockItemService{err: models.ErrNotFound}
		req := httptest.NewRequest(http.MethodDelete, "/items/4", nil)
		w := httptest.NewRecorder()

		newItemRouter(items, &mockSubmitter{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Item not found", decodeBody(t, w)["message"])
	})
}

func TestItemHandler_RequiresUser(t *testing.T) {
	h := NewItemHandler(&mockItemService{}, &mockSubmitter{}, zap.NewNop())
	router := newTestRouter(nil, func(r chi.Router) { h.RegisterRoutes(r) })
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
