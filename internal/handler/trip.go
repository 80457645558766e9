package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmock/internal/domain"
	"tripmock/internal/logging"
)

// Transformer produces the response document from the trip fixture.
type Transformer interface {
	Transform(fixture *domain.Fixture) (domain.Document, error)
}

// TripHandler handles HTTP requests for the trip.
type TripHandler struct {
	transformer Transformer
	fixture     *domain.Fixture
}

// NewTripHandler creates a new TripHandler serving fixture through transformer.
func NewTripHandler(transformer Transformer, fixture *domain.Fixture) *TripHandler {
	return &TripHandler{
		transformer: transformer,
		fixture:     fixture,
	}
}

// GetTrip handles GET /
func (h *TripHandler) GetTrip(c *gin.Context) {
	doc, err := h.transformer.Transform(h.fixture)
	if err != nil {
		logging.LogError(logging.FromContext(c.Request.Context()), "failed to transform trip fixture", err,
			slog.String("component", "trip_handler"))
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, doc)
}
