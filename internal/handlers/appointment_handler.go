package handlers

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/httperr"
	"github.com/amaraspa/spa-scheduler/internal/httpresp"
	"github.com/amaraspa/spa-scheduler/internal/middleware"
	"github.com/amaraspa/spa-scheduler/internal/timezone"
	ucAppointment "github.com/amaraspa/spa-scheduler/internal/usecase/appointment"
)

type AppointmentHandler struct {
	repo         domain.Repository
	createUC     *ucAppointment.CreateAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	approveUC    *ucAppointment.ApproveAppointment
	cancelUC     *ucAppointment.CancelAppointment
	completeUC   *ucAppointment.CompleteAppointment
	listUC       *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	repo domain.Repository,
	createUC *ucAppointment.CreateAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	approveUC *ucAppointment.ApproveAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:         repo,
		createUC:     createUC,
		rescheduleUC: rescheduleUC,
		approveUC:    approveUC,
		cancelUC:     cancelUC,
		completeUC:   completeUC,
		listUC:       listUC,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ClientID      uint   `json:"client_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime     string `json:"start_time" binding:"required"` // HH:MM
	ModeOfPayment string `json:"mode_of_payment"`
	Notes         string `json:"notes"`
	IsTemporary   bool   `json:"is_temporary"`
}

type RescheduleAppointmentRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	Notes     string `json:"notes"`
}

// --------- Error mapping ---------

// writeSchedulingError translates business rejections to HTTP statuses;
// anything without a business code is a storage fault.
func writeSchedulingError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	switch code {
	case "":
		log.Println("appointment storage error:", err)
		httperr.Internal(c, "internal_error", "Something went wrong, try again later.")
	case httperr.CodeNotFound, httperr.CodeClientNotFound, httperr.CodeServiceNotFound:
		httperr.NotFound(c, code, "The requested record does not exist.")
	case httperr.CodeClientNotEligible:
		httperr.Forbidden(c, code, "This client is not allowed to book.")
	case httperr.CodeAllRoomsBooked:
		httperr.Conflict(c, code, "All rooms are booked for this time slot.")
	case httperr.CodeInvalidState:
		httperr.Conflict(c, code, "The appointment status does not allow this operation.")
	default:
		httperr.BadRequest(c, code, "The booking request is invalid.")
	}
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, err.Error())
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:      req.ClientID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		ModeOfPayment: req.ModeOfPayment,
		Notes:         req.Notes,
		IsTemporary:   req.IsTemporary,
	})
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	filter := domain.ListFilter{
		Status: c.Query("status"),
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := timezone.ParseDate(dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
			return
		}
		filter.Date = &date
	}

	if clientStr := c.Query("client_id"); clientStr != "" {
		clientID, err := strconv.ParseUint(clientStr, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "Client id must be numeric.")
			return
		}
		filter.ClientID = uint(clientID)
	}

	out, err := h.listUC.Execute(c.Request.Context(), filter)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.repo.GetAppointmentByID(c.Request.Context(), id)
	if err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Appointment not found.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ListByClient(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("clientId"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Client id must be numeric.")
		return
	}

	apps, err := h.repo.ListByClient(c.Request.Context(), uint(clientID))
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.List(c, apps)
}

func (h *AppointmentHandler) Approve(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.approveUC.Execute(c.Request.Context(), id, middleware.AdminIDFromContext(c))
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), id, middleware.AdminIDFromContext(c))
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, err.Error())
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		AppointmentID: id,
		Date:          req.Date,
		StartTime:     req.StartTime,
		Notes:         req.Notes,
	})
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), id, middleware.AdminIDFromContext(c))
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return 0, false
	}
	return uint(id), true
}
