package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/sdfwot/pkg/api/types"
	"github.com/urmzd/sdfwot/pkg/db"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// ConversionsHandler handles conversion history endpoints
type ConversionsHandler struct {
	store db.ConversionStore
}

// NewConversionsHandler creates a new conversions handler
func NewConversionsHandler(store db.ConversionStore) *ConversionsHandler {
	return &ConversionsHandler{store: store}
}

// ListConversions handles GET /conversions
// @Summary      List conversions
// @Description  Returns recorded conversions, newest first
// @Tags         conversions
// @Produce      json
// @Param        status  query     string  false  "Filter by status"  Enums(succeeded, failed)
// @Param        kind    query     string  false  "Filter by source kind"  Enums(sdf, tm, td)
// @Param        limit   query     int     false  "Maximum number of records (default 50, max 500)"
// @Success      200     {object}  types.ListConversionsResponse
// @Failure      400     {object}  types.ErrorResponse  "Invalid filter"
// @Failure      500     {object}  types.ErrorResponse  "Database error"
// @Router       /conversions [get]
func (h *ConversionsHandler) ListConversions(c *gin.Context) {
	filter := db.ConversionFilter{
		Status:     c.Query("status"),
		SourceKind: c.Query("kind"),
		Limit:      defaultListLimit,
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "invalid_request",
				Message: "limit must be a positive integer",
			})
			return
		}
		filter.Limit = min(limit, maxListLimit)
	}

	records, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}

	conversions := make([]types.Conversion, 0, len(records))
	for _, r := range records {
		conversions = append(conversions, types.NewConversion(r))
	}

	c.JSON(http.StatusOK, types.ListConversionsResponse{
		Conversions: conversions,
		Count:       len(conversions),
	})
}

// GetConversion handles GET /conversions/:id
// @Summary      Get conversion
// @Description  Returns a single recorded conversion
// @Tags         conversions
// @Produce      json
// @Param        id   path      string  true  "Conversion ID"
// @Success      200  {object}  types.ConversionResponse
// @Failure      404  {object}  types.ErrorResponse  "Conversion not found"
// @Failure      500  {object}  types.ErrorResponse  "Database error"
// @Router       /conversions/{id} [get]
func (h *ConversionsHandler) GetConversion(c *gin.Context) {
	record, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrConversionNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Error:   "not_found",
				Message: "Conversion not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.ConversionResponse{Conversion: types.NewConversion(record)})
}
