package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshguard/freshd/internal/domain"
	"github.com/freshguard/freshd/internal/store"
)

type SpaceHandler struct {
	store *store.Store
}

func NewSpaceHandler(s *store.Store) *SpaceHandler {
	return &SpaceHandler{store: s}
}

type spaceView struct {
	ID         string           `json:"id"`
	Kind       domain.SpaceKind `json:"kind"`
	CustomName string           `json:"custom_name,omitempty"`
	ColorHex   string           `json:"color_hex"`
	SortOrder  int              `json:"sort_order"`
	UsesExpiry bool             `json:"uses_expiry"`
	Sections   []domain.Section `json:"sections,omitempty"`
	ItemCount  int              `json:"item_count"`
}

func toSpaceView(space domain.Space) spaceView {
	return spaceView{
		ID:         space.ID,
		Kind:       space.Kind,
		CustomName: space.CustomName,
		ColorHex:   space.ColorHex,
		SortOrder:  space.SortOrder,
		UsesExpiry: space.UsesExpiry(),
		Sections:   space.Sections(),
		ItemCount:  len(space.Items),
	}
}

func (h *SpaceHandler) HandleList(c *gin.Context) {
	spaces := h.store.Spaces()
	views := make([]spaceView, 0, len(spaces))
	for _, space := range spaces {
		views = append(views, toSpaceView(space))
	}
	c.JSON(http.StatusOK, gin.H{"spaces": views})
}

type createSpaceRequest struct {
	Kind       string `json:"kind" binding:"required"`
	CustomName string `json:"custom_name"`
}

func (h *SpaceHandler) HandleCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var req createSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	space, err := h.store.AddSpace(ctx, domain.SpaceKind(req.Kind), req.CustomName)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	slog.InfoContext(ctx, "space created",
		slog.String("space_id", space.ID),
		slog.String("kind", space.Kind.String()),
	)
	c.JSON(http.StatusCreated, toSpaceView(space))
}

type updateSpaceRequest struct {
	Name     *string `json:"name"`
	ColorHex *string `json:"color_hex"`
}

func (h *SpaceHandler) HandleUpdate(c *gin.Context) {
	ctx := c.Request.Context()
	spaceID := c.Param("spaceID")

	var req updateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if req.Name != nil {
		if err := h.store.RenameSpace(ctx, spaceID, *req.Name); err != nil {
			respondDomainError(c, err)
			return
		}
	}
	if req.ColorHex != nil {
		if err := h.store.RecolorSpace(ctx, spaceID, *req.ColorHex); err != nil {
			respondDomainError(c, err)
			return
		}
	}

	space, err := h.store.Space(spaceID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSpaceView(space))
}

func (h *SpaceHandler) HandleDelete(c *gin.Context) {
	ctx := c.Request.Context()
	spaceID := c.Param("spaceID")

	if err := h.store.DeleteSpace(ctx, spaceID); err != nil {
		respondDomainError(c, err)
		return
	}

	slog.InfoContext(ctx, "space deleted", slog.String("space_id", spaceID))
	c.Status(http.StatusNoContent)
}

// HandleUrgentCount reports how many items expire within the requested
// number of days, for app badge counts.
func (h *SpaceHandler) HandleUrgentCount(c *gin.Context) {
	days := 3
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "validation_error", "days must be a non-negative integer")
			return
		}
		days = parsed
	}

	c.JSON(http.StatusOK, gin.H{
		"within_days": days,
		"count":       h.store.UrgentItemCount(days),
	})
}
