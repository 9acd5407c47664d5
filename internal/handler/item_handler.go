package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshguard/freshd/internal/domain"
	"github.com/freshguard/freshd/internal/service/urgency"
	"github.com/freshguard/freshd/internal/store"
)

const dateFormat = "2006-01-02"

type ItemHandler struct {
	store      *store.Store
	classifier *urgency.Classifier
	loc        *time.Location
}

func NewItemHandler(s *store.Store, classifier *urgency.Classifier, loc *time.Location) *ItemHandler {
	return &ItemHandler{
		store:      s,
		classifier: classifier,
		loc:        loc,
	}
}

type itemView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ExpiryDate    string `json:"expiry_date,omitempty"`
	StoredDate    string `json:"stored_date"`
	Section       string `json:"section,omitempty"`
	Note          string `json:"note,omitempty"`
	DaysStored    int    `json:"days_stored"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
	Expired       bool   `json:"expired"`
	ColorHex      string `json:"color_hex,omitempty"`
}

func (h *ItemHandler) toItemView(item domain.Item, thresholds []domain.Threshold, now time.Time) itemView {
	view := itemView{
		ID:         item.ID,
		Name:       item.Name,
		StoredDate: item.StoredDate.In(h.loc).Format(dateFormat),
		Section:    string(item.Section),
		Note:       item.Note,
		DaysStored: item.DaysStored(now, h.loc),
		Expired:    item.IsExpired(now, h.loc),
	}
	if item.ExpiryDate != nil {
		view.ExpiryDate = item.ExpiryDate.In(h.loc).Format(dateFormat)
	}
	if remaining, ok := item.DaysRemaining(now, h.loc); ok {
		view.DaysRemaining = &remaining
	}
	// The color is derived on every read, never stored.
	if color, ok := h.classifier.Classify(item, thresholds, now); ok {
		view.ColorHex = color
	}
	return view
}

func (h *ItemHandler) HandleList(c *gin.Context) {
	spaceID := c.Param("spaceID")
	section := domain.Section(c.Query("section"))

	items, err := h.store.SortedItems(spaceID, section)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	thresholds := h.store.Thresholds()
	now := time.Now()
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, h.toItemView(item, thresholds, now))
	}
	c.JSON(http.StatusOK, gin.H{"items": views})
}

type createItemRequest struct {
	Name       string `json:"name" binding:"required"`
	ExpiryDate string `json:"expiry_date"`
	Section    string `json:"section"`
	Note       string `json:"note"`
}

func (h *ItemHandler) HandleCreate(c *gin.Context) {
	ctx := c.Request.Context()
	spaceID := c.Param("spaceID")

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	expiry, ok := h.parseDate(c, req.ExpiryDate)
	if !ok {
		return
	}

	item, err := h.store.AddItem(ctx, spaceID, req.Name, expiry, domain.Section(req.Section), req.Note)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	slog.InfoContext(ctx, "item added",
		slog.String("space_id", spaceID),
		slog.String("item_id", item.ID),
	)
	c.JSON(http.StatusCreated, h.toItemView(item, h.store.Thresholds(), time.Now()))
}

type updateItemRequest struct {
	Name       string `json:"name" binding:"required"`
	ExpiryDate string `json:"expiry_date"`
	StoredDate string `json:"stored_date"`
	Section    string `json:"section"`
	Note       string `json:"note"`
}

// HandleUpdate replaces the whole item record by id.
func (h *ItemHandler) HandleUpdate(c *gin.Context) {
	ctx := c.Request.Context()
	spaceID := c.Param("spaceID")
	itemID := c.Param("itemID")

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	expiry, ok := h.parseDate(c, req.ExpiryDate)
	if !ok {
		return
	}

	space, err := h.store.Space(spaceID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	idx := space.FindItem(itemID)
	if idx < 0 {
		respondDomainError(c, domain.ErrItemNotFound)
		return
	}

	storedDate := space.Items[idx].StoredDate
	if req.StoredDate != "" {
		parsed, ok := h.parseDate(c, req.StoredDate)
		if !ok {
			return
		}
		storedDate = *parsed
	}

	item := domain.Item{
		ID:         itemID,
		Name:       req.Name,
		ExpiryDate: expiry,
		StoredDate: storedDate,
		Section:    domain.Section(req.Section),
		Note:       req.Note,
	}
	if err := h.store.UpdateItem(ctx, spaceID, item); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toItemView(item, h.store.Thresholds(), time.Now()))
}

func (h *ItemHandler) HandleDelete(c *gin.Context) {
	ctx := c.Request.Context()
	spaceID := c.Param("spaceID")
	itemID := c.Param("itemID")

	if err := h.store.DeleteItem(ctx, spaceID, itemID); err != nil {
		respondDomainError(c, err)
		return
	}

	slog.InfoContext(ctx, "item deleted",
		slog.String("space_id", spaceID),
		slog.String("item_id", itemID),
	)
	c.Status(http.StatusNoContent)
}

// parseDate reads a yyyy-mm-dd date in the configured timezone. An
// empty value yields nil. On failure it writes the error response and
// returns false.
func (h *ItemHandler) parseDate(c *gin.Context, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	parsed, err := time.ParseInLocation(dateFormat, raw, h.loc)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "dates must be formatted yyyy-mm-dd")
		return nil, false
	}
	return &parsed, true
}
