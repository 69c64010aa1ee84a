package update_feature_flag

import (
	"errors"
	"net/http"

	"github.com/glowbeauty/salon-booking-service/internal/api/handlers"
	"github.com/glowbeauty/salon-booking-service/internal/api/middleware"
	featuresService "github.com/glowbeauty/salon-booking-service/internal/service/features"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgUnknownFlag        = "unknown feature flag"
	msgInvalidInput       = "invalid input data"
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

// Handle PATCH /api/v1/admin/features
// Переключает флаг; состояние применяется сразу для всех операций
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateFeatureFlagRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/features - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, featuresService.ErrUnknownFlag):
			h.logger.Warn("PATCH /admin/features - Unknown flag: name=%s", req.Name)
			handlers.RespondNotFound(w, msgUnknownFlag)

		case errors.Is(err, featuresService.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/features - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /admin/features - Failed to update flag: name=%s, error=%v", req.Name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/features - Flag updated: name=%s, enabled=%v, actor=%s",
		result.Name, result.Enabled, actor)
	handlers.RespondJSON(w, http.StatusOK, result)
}
