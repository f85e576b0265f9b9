package booking

import (
	"errors"
	"net/http"

	"stayhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterGuestRoutes mounts the guest-facing endpoints. The group must run
// behind JWTAuth.
func (h *Handler) RegisterGuestRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/my", h.GetMyBookings)
	rg.GET("/bookings/my/:id", h.GetMyBooking)
	rg.PUT("/bookings/my/:id", h.UpdateMyBooking)
	rg.POST("/bookings/my/:id/cancel", h.CancelMyBooking)
}

// RegisterHostRoutes mounts the host endpoints. The group must run behind
// JWTAuth and HostOnly.
func (h *Handler) RegisterHostRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListHostBookings)
	rg.GET("/bookings/stats", h.GetHostStats)
	rg.GET("/bookings/:id", h.GetHostBooking)
	rg.PUT("/bookings/:id", h.UpdateHostBooking)
	rg.POST("/bookings/:id/confirm", h.ConfirmBooking)
	rg.POST("/bookings/:id/cancel", h.CancelBookingByHost)
	rg.POST("/bookings/:id/process-cancellation", h.ProcessCancellation)
	rg.POST("/bookings/:id/complete", h.CompleteBooking)
	rg.POST("/bookings/:id/confirm-payment", h.ConfirmPayment)
	rg.POST("/bookings/:id/check-in", h.CheckInBooking)
}

// RegisterAdminRoutes mounts the admin endpoints. The group must run behind
// JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListAllBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PUT("/bookings/:id", h.UpdateBookingAdmin)
	rg.DELETE("/bookings/:id", h.DeleteBooking)
	rg.POST("/bookings/:id/confirm-payment", h.ConfirmPayment)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	bookings, err := h.service.GetMyBookings(c.Request.Context(), userID, q.Limit, q.Offset)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetMyBooking(c *gin.Context) {
	userID, bookingID, ok := userAndBookingID(c)
	if !ok {
		return
	}

	b, err := h.service.GetMyBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateMyBooking(c *gin.Context) {
	userID, bookingID, ok := userAndBookingID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	// Guests never set status directly; cancellation has its own endpoint.
	req.Status = nil

	b, err := h.service.UpdateMyBooking(c.Request.Context(), userID, bookingID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelMyBooking(c *gin.Context) {
	userID, bookingID, ok := userAndBookingID(c)
	if !ok {
		return
	}

	var req CancellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}

	b, err := h.service.CancelMyBooking(c.Request.Context(), userID, bookingID, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListHostBookings(c *gin.Context) {
	hostID, ok := currentUserID(c)
	if !ok {
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	bookings, err := h.service.ListHostBookings(c.Request.Context(), hostID, q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetHostBooking(c *gin.Context) {
	hostID, bookingID, ok := userAndBookingID(c)
	if !ok {
		return
	}

	b, err := h.service.GetHostBooking(c.Request.Context(), hostID, bookingID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateHostBooking(c *gin.Context) {
	hostID, bookingID, ok := userAndBookingID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateHostBooking(c.Request.Context(), hostID, bookingID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ConfirmBooking(c *gin.Context) {
	hostID, bookingID, ok := userAndBookingID(c)
	if !ok {
		return
	}

	b, err := h.service.ConfirmBooking(c.Request.Context(), hostID, bookingID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBookingByHost(c *gin.Context) {
	hostID, bookingID, ok := userAndBookingID(c)
	if !ok {
		return
	}

	var req CancellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}

	b, err := h.service.CancelBookingByHost(c.Request.Context(), hostID, bookingID, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ProcessCancellation(c *gin.Context) {
	hostID, bookingID, ok := userAndBookingID(c)
	if !ok {
		return
	}

	var req ProcessCancellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if req.RefundAmount < 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Refund amount must not be negative")
		return
	}

	b, err := h.service.ProcessCancellation(c.Request.Context(), hostID, bookingID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CompleteBooking(c *gin.Context) {
	hostID, bookingID, ok := userAndBookingID(c)
	if !ok {
		return
	}

	b, err := h.service.CompleteBooking(c.Request.Context(), hostID, bookingID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	actorID, bookingID, ok := userAndBookingID(c)
	if !ok {
		return
	}

	b, err := h.service.ConfirmPayment(c.Request.Context(), actorID, bookingID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CheckInBooking(c *gin.Context) {
	hostID, bookingID, ok := userAndBookingID(c)
	if !ok {
		return
	}

	b, err := h.service.CheckInBooking(c.Request.Context(), hostID, bookingID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetHostStats(c *gin.Context) {
	hostID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.service.GetHostStats(c.Request.Context(), hostID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) ListAllBookings(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	bookings, err := h.service.ListAllBookings(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetBooking(c *gin.Context) {
	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateBookingAdmin(c *gin.Context) {
	adminID, bookingID, ok := userAndBookingID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), adminID, bookingID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), bookingID); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// writeServiceError maps service sentinels to the HTTP error envelope.
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrHotelNotFound),
		errors.Is(err, ErrRoomTypeNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())

	case errors.Is(err, ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())

	case errors.Is(err, ErrAccessDenied):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())

	case errors.Is(err, ErrCheckInDatePast),
		errors.Is(err, ErrCheckOutNotAfterCheckIn),
		errors.Is(err, ErrCheckInTooFarAhead),
		errors.Is(err, ErrStayTooLong),
		errors.Is(err, ErrInvalidGuestCount),
		errors.Is(err, ErrGuestsExceedCapacity),
		errors.Is(err, ErrLargeGroupNeedsApproval),
		errors.Is(err, ErrRefundExceedsTotal):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())

	case errors.Is(err, ErrHotelNotBookable),
		errors.Is(err, ErrNoRoomsAvailable),
		errors.Is(err, ErrRoomUnderMaintenance),
		errors.Is(err, ErrDuplicateReference):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", err.Error())

	case errors.Is(err, ErrAlreadyCancelled),
		errors.Is(err, ErrCannotCancel),
		errors.Is(err, ErrAlreadyConfirmed),
		errors.Is(err, ErrCannotConfirm),
		errors.Is(err, ErrInvalidStatusTransition),
		errors.Is(err, ErrAlreadyCheckedIn),
		errors.Is(err, ErrPaymentFailed):
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())

	case errors.Is(err, ErrRefundProcessingFailed),
		errors.Is(err, ErrReferenceExhausted):
		response.Error(c, http.StatusInternalServerError, "PROCESSING_ERROR", err.Error())

	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	if !ok || id == uuid.Nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}

func bookingIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return uuid.Nil, false
	}
	return id, true
}

func userAndBookingID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	bookingID, ok := bookingIDParam(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, bookingID, true
}
