package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/amaraspa/spa-scheduler/internal/httperr"
	"github.com/amaraspa/spa-scheduler/internal/httpresp"
	"github.com/amaraspa/spa-scheduler/internal/middleware"
	ucSettings "github.com/amaraspa/spa-scheduler/internal/usecase/settings"
)

type SettingsHandler struct {
	getUC    *ucSettings.GetSettings
	updateUC *ucSettings.UpdateSettings
}

func NewSettingsHandler(
	getUC *ucSettings.GetSettings,
	updateUC *ucSettings.UpdateSettings,
) *SettingsHandler {
	return &SettingsHandler{
		getUC:    getUC,
		updateUC: updateUC,
	}
}

type UpdateSettingsRequest struct {
	TotalRooms  *int    `json:"total_rooms"`
	OpeningTime *string `json:"opening_time"`
	ClosingTime *string `json:"closing_time"`
	DownPayment *int    `json:"down_payment"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.getUC.Execute(c.Request.Context())
	if err != nil {
		log.Println("settings read error:", err)
		httperr.Internal(c, httperr.CodeUnconfigured, "Could not load settings.")
		return
	}

	httpresp.OK(c, settings)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	settings, err := h.updateUC.Execute(c.Request.Context(), ucSettings.UpdateSettingsInput{
		TotalRooms:  req.TotalRooms,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
		DownPayment: req.DownPayment,
	}, middleware.AdminIDFromContext(c))
	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			httperr.BadRequest(c, code, "Settings update rejected.")
			return
		}
		log.Println("settings update error:", err)
		httperr.Internal(c, "internal_error", "Could not update settings.")
		return
	}

	httpresp.OK(c, settings)
}
