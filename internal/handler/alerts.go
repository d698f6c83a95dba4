package handler

import (
	"errors"
	"net/http"

	"floppahub-rest-api/internal/model"
	"floppahub-rest-api/internal/service"
	"floppahub-rest-api/internal/upstream/freestuff"
	"floppahub-rest-api/pkg/apierror"
	"floppahub-rest-api/pkg/response"
)

// AlertHandler handles free-game alert HTTP requests.
type AlertHandler struct {
	alerts *service.AlertService
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(alerts *service.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// Games handles GET /alert/games. The body is always a list: one alert when
// something new was found, empty otherwise. Feed failures relay the
// upstream status so callers can back off on a 429.
func (h *AlertHandler) Games(w http.ResponseWriter, r *http.Request) {
	alert, err := h.alerts.Run(r.Context())
	if err != nil {
		var statusErr *freestuff.StatusError
		if errors.As(err, &statusErr) {
			response.Error(w, apierror.Upstream(statusErr.StatusCode, "free games feed unavailable"))
			return
		}
		response.Error(w, apierror.InternalError("alert pass failed"))
		return
	}

	alerts := []*model.GameAlert{}
	if alert != nil {
		alerts = append(alerts, alert)
	}
	response.OK(w, alerts)
}
