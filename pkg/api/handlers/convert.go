package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/sdfwot/pkg/api/types"
	"github.com/urmzd/sdfwot/pkg/convert"
	"github.com/urmzd/sdfwot/pkg/document"
)

// ConvertHandler handles conversion and validation endpoints
type ConvertHandler struct {
	service *convert.Service
}

// NewConvertHandler creates a new convert handler
func NewConvertHandler(service *convert.Service) *ConvertHandler {
	return &ConvertHandler{service: service}
}

// Convert handles POST /convert
// @Summary      Convert a document
// @Description  Converts an SDF model to a Thing Model or Thing Description, or a Thing Model to SDF. The request body is the source document.
// @Tags         convert
// @Accept       json
// @Produce      json
// @Param        from     query     string  true   "Source kind"  Enums(sdf, tm, td)
// @Param        to       query     string  false  "Target kind, defaults to the profile target for SDF and to sdf otherwise"  Enums(sdf, tm, td)
// @Param        request  body      object  true   "Source document"
// @Success      200      {object}  types.ConvertResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid document or kind"
// @Failure      422      {object}  types.ErrorResponse  "Unsupported conversion"
// @Failure      500      {object}  types.ErrorResponse  "Conversion error"
// @Router       /convert [post]
func (h *ConvertHandler) Convert(c *gin.Context) {
	from, err := document.ParseKind(c.Query("from"))
	if err != nil {
		writeConversionError(c, err)
		return
	}

	var to document.Kind
	if raw := c.Query("to"); raw != "" {
		if to, err = document.ParseKind(raw); err != nil {
			writeConversionError(c, err)
			return
		}
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	res, err := h.service.Convert(c.Request.Context(), convert.Request{
		From:   from,
		To:     to,
		Input:  body,
		Source: c.ClientIP(),
	})
	if err != nil {
		writeConversionError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ConvertResponse{
		ID:         res.ID,
		From:       string(res.From),
		To:         string(res.To),
		DurationMS: res.Duration.Milliseconds(),
		Document:   res.Output,
	})
}

// Validate handles POST /validate
// @Summary      Validate a document
// @Description  Checks a document against the JSON schema of its kind without converting it
// @Tags         convert
// @Accept       json
// @Produce      json
// @Param        kind     query     string  true  "Document kind"  Enums(sdf, tm, td)
// @Param        request  body      object  true  "Document"
// @Success      200      {object}  types.ValidateResponse
// @Failure      400      {object}  types.ErrorResponse  "Unknown kind"
// @Router       /validate [post]
func (h *ConvertHandler) Validate(c *gin.Context) {
	kind, err := document.ParseKind(c.Query("kind"))
	if err != nil {
		writeConversionError(c, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	resp := types.ValidateResponse{Kind: string(kind), Valid: true}
	if err := h.service.Validate(kind, body); err != nil {
		if !errors.Is(err, document.ErrParse) {
			writeConversionError(c, err)
			return
		}
		resp.Valid = false
		resp.Error = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func writeConversionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, document.ErrUnknownKind):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_kind",
			Message: err.Error(),
		})
	case errors.Is(err, document.ErrParse):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_document",
			Message: err.Error(),
		})
	case errors.Is(err, document.ErrUnsupportedConversion):
		c.JSON(http.StatusUnprocessableEntity, types.ErrorResponse{
			Error:   "unsupported_conversion",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "conversion_error",
			Message: err.Error(),
		})
	}
}
