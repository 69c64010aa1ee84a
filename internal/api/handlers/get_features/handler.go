package get_features

import (
	"net/http"

	"github.com/glowbeauty/salon-booking-service/internal/api/handlers"
)

type Handler struct {
	service FeaturesService
	logger  Logger
}

func NewHandler(service FeaturesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/features
// Публичная карта фиче-флагов: имя → состояние
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetPublic(r.Context())
	if err != nil {
		h.logger.Error("GET /features - Failed to get feature flags: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
