package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshguard/freshd/internal/store"
)

type ThresholdHandler struct {
	store *store.Store
}

func NewThresholdHandler(s *store.Store) *ThresholdHandler {
	return &ThresholdHandler{store: s}
}

func (h *ThresholdHandler) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"thresholds": h.store.Thresholds()})
}

type createThresholdRequest struct {
	ColorHex      string `json:"color_hex" binding:"required"`
	DaysThreshold int    `json:"days_threshold" binding:"required"`
}

func (h *ThresholdHandler) HandleCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var req createThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	threshold, err := h.store.AddThreshold(ctx, req.ColorHex, req.DaysThreshold)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	slog.InfoContext(ctx, "threshold added",
		slog.String("threshold_id", threshold.ID),
		slog.Int("days", threshold.DaysThreshold),
	)
	c.JSON(http.StatusCreated, threshold)
}

type updateThresholdRequest struct {
	DaysThreshold *int  `json:"days_threshold"`
	Enabled       *bool `json:"notification_enabled"`
}

func (h *ThresholdHandler) HandleUpdate(c *gin.Context) {
	ctx := c.Request.Context()
	thresholdID := c.Param("thresholdID")

	var req updateThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if req.DaysThreshold != nil {
		if err := h.store.SetThresholdDays(ctx, thresholdID, *req.DaysThreshold); err != nil {
			respondDomainError(c, err)
			return
		}
	}
	if req.Enabled != nil {
		if err := h.store.SetThresholdEnabled(ctx, thresholdID, *req.Enabled); err != nil {
			respondDomainError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"thresholds": h.store.Thresholds()})
}

func (h *ThresholdHandler) HandleDelete(c *gin.Context) {
	ctx := c.Request.Context()
	thresholdID := c.Param("thresholdID")

	if err := h.store.RemoveThreshold(ctx, thresholdID); err != nil {
		respondDomainError(c, err)
		return
	}

	slog.InfoContext(ctx, "threshold removed", slog.String("threshold_id", thresholdID))
	c.Status(http.StatusNoContent)
}
