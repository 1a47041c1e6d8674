package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/models"
	"github.com/recyclerewards/backend/internal/services"
	"go.uber.org/zap"
)

// ItemService is the interface that wraps methods for reading and editing a user's own items
type ItemService interface {
	// ListItems returns all items of the user.
	ListItems(ctx context.Context, userID int) ([]models.RecycleItem, error)
	// GetItem returns an item owned by the user.
	//
	// If there is no such item, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetItem(ctx context.Context, userID, itemID int) (*models.RecycleItem, error)
	// History returns the user's items within "dateRange" days ("1", "7", "30", "365" or "all") of "itemType".
	//
	// If the date range is unsupported, a models.ValidationError will be returned.
	History(ctx context.Context, userID int, dateRange, itemType string) (*models.ItemHistory, error)
	// UpdateItem changes the description and weight of an item owned by the user.
	UpdateItem(ctx context.Context, userID, itemID int, req *models.UpdateItemRequest) (*models.RecycleItem, error)
	// DeleteItem removes an item owned by the user. Earned points are kept.
	DeleteItem(ctx context.Context, userID, itemID int) error
}

// ItemSubmitter is the part of the points ledger that records new items
type ItemSubmitter interface {
	// SubmitItem records an item and credits the points its condition earns in one transaction.
	//
	// "req" parameter contains the form fields, "image" an optional photo.
	//
	// Returns the saved item, the points earned and the new balance.
	SubmitItem(ctx context.Context, userID int, req *models.SubmitItemRequest, image *services.ImageUpload) (*models.RecycleItem, int, int, error)
}

// ItemHandler handles recycle item HTTP requests
type ItemHandler struct {
	BaseHandler
	itemService ItemService
	ledger      ItemSubmitter
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService ItemService, ledger ItemSubmitter, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		BaseHandler: BaseHandler{Logger: logger},
		itemService: itemService,
		ledger:      ledger,
	}
}

// RegisterRoutes registers all item handler routes
// Note: This assumes the router already requires a session
func (h *ItemHandler) RegisterRoutes(r chi.Router) {
	r.Route("/items", func(r chi.Router) {
		r.Get("/", h.ListItems)
		r.Post("/", h.SubmitItem)
		r.Get("/history", h.History)
		r.Get("/{id}", h.GetItem)
		r.Put("/{id}", h.UpdateItem)
		r.Delete("/{id}", h.DeleteItem)
	})
}

// ListItems handles GET /items
// @Summary List own items
// @Tags items
// @Produce json
// @Success 200 {object} map[string]any "Items of the signed-in user"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /items [get]
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	items, err := h.itemService.ListItems(r.Context(), user.ID)
	if err != nil {
		h.RespondServiceError(w, r, err, "Item not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"items": items})
}

// SubmitItem handles POST /items
// @Summary Submit a recycle item
// @Description Record a new item as PENDING and credit points for its condition: new 300, likeNew 150, good 100, fair 50, poor 25, anything else 0
// @Tags items
// @Accept multipart/form-data
// @Produce json
// @Param itemType formData string true "Item type"
// @Param itemDescription formData string true "Description"
// @Param itemCondition formData string true "Condition" Enums(new, likeNew, good, fair, poor)
// @Param itemWeight formData number true "Weight in kg"
// @Param image formData file false "Item photo, at most 2MB"
// @Success 201 {object} map[string]any "Item added successfully"
// @Failure 400 {object} map[string]string "Invalid input or file too large"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 500 {object} map[string]string "Internal server error or image upload failure"
// @Router /items [post]
func (h *ItemHandler) SubmitItem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	image, closeImage, ok := h.parseImageForm(w, r, "image")
	if !ok {
		return
	}
	defer closeImage()

	req := &models.SubmitItemRequest{
		ItemType:    r.FormValue("itemType"),
		Description: r.FormValue("itemDescription"),
		Condition:   r.FormValue("itemCondition"),
		Weight:      r.FormValue("itemWeight"),
	}

	item, earned, total, err := h.ledger.SubmitItem(r.Context(), user.ID, req, image)
	if err != nil {
		h.RespondServiceError(w, r, err, "User not found")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"message":        "Item added successfully",
		"item":           item,
		"pointsEarned":   earned,
		"newTotalPoints": total,
	})
}

// History handles GET /items/history
// @Summary Recycling history
// @Description Items of the signed-in user filtered by date range and type, with summary totals
// @Tags items
// @Produce json
// @Param dateRange query string false "Days back" Enums(1, 7, 30, 365, all)
// @Param itemType query string false "Item type or all"
// @Success 200 {object} models.ItemHistory
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /items/history [get]
func (h *ItemHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	history, err := h.itemService.History(r.Context(), user.ID, query.Get("dateRange"), query.Get("itemType"))
	if err != nil {
		h.RespondServiceError(w, r, err, "Item not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, history)
}

// GetItem handles GET /items/{id}
// @Summary Get own item
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]any "Item"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(r.Context(), user.ID, id)
	if err != nil {
		h.RespondServiceError(w, r, err, "Item not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"item": item})
}

// UpdateItem handles PUT /items/{id}
// @Summary Update own item
// @Description Change description and weight of an item. Earned points are not recalculated.
// @Tags items
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body models.UpdateItemRequest true "Fields to change"
// @Success 200 {object} map[string]any "Updated successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /items/{id} [put]
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.itemService.UpdateItem(r.Context(), user.ID, id, &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "Item not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Updated successfully",
		"item":    item,
	})
}

// DeleteItem handles DELETE /items/{id}
// @Summary Delete own item
// @Description Delete an item and its photo. Points earned by the item are kept.
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]string "Item deleted successfully"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /items/{id} [delete]
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(r.Context(), user.ID, id); err != nil {
		h.RespondServiceError(w, r, err, "Item not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}
