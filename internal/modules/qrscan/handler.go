package qrscan

import (
	"errors"
	"net/http"

	"equiprent/internal/domain"
	"equiprent/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	scan := rg.Group("/qr-scan")
	{
		scan.POST("/validate", h.Validate)
		scan.POST("/borrow", h.Borrow)
		scan.POST("/return", h.Return)
		scan.GET("/equipment/:qrCode", h.EquipmentByQR)
	}
}

func (h *Handler) Validate(c *gin.Context) {
	var req ScanValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "QR data is required")
		return
	}

	res, err := h.service.ScanValidate(c.Request.Context(), req.QRData, c.GetInt64("user_id"))
	if err != nil {
		h.workflowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Borrow(c *gin.Context) {
	var req BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Equipment ID is required")
		return
	}

	durationType := domain.DurationType(req.DurationType)
	if req.DurationType == "" {
		durationType = domain.DurationHours
	}
	duration := req.Duration
	if duration == 0 {
		duration = 1
	}

	res, err := h.service.Borrow(c.Request.Context(), req.EquipmentID, c.GetInt64("user_id"), durationType, duration)
	if err != nil {
		h.workflowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Return(c *gin.Context) {
	var req ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Booking ID and equipment ID are required")
		return
	}

	res, err := h.service.Return(c.Request.Context(), req.BookingID, req.EquipmentID, c.GetInt64("user_id"))
	if err != nil {
		h.workflowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) EquipmentByQR(c *gin.Context) {
	eq, err := h.service.ResolveEquipment(c.Request.Context(), c.Param("qrCode"))
	if err != nil {
		h.workflowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"equipment": eq})
}

func (h *Handler) workflowError(c *gin.Context, err error) {
	var overdue *OverdueBlockError
	if errors.As(err, &overdue) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "OVERDUE_BLOCK",
			"You have overdue equipment. Please return them first.",
			gin.H{"overdue_count": overdue.Count})
		return
	}

	switch {
	case errors.Is(err, ErrInvalidToken):
		response.BadRequest(c, "Invalid QR code format")
	case errors.Is(err, ErrValidation):
		response.BadRequest(c, "Duration must be positive and duration type must be hours or days")
	case errors.Is(err, ErrEquipmentNotFound):
		response.NotFound(c, "Equipment not found")
	case errors.Is(err, ErrBookingNotFound):
		response.NotFound(c, "Booking not found")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusBadRequest, "NOT_AVAILABLE", "Equipment is not available for borrowing")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "Unauthorized to return this equipment")
	case errors.Is(err, ErrAlreadyReturned):
		response.Error(c, http.StatusConflict, "ALREADY_RETURNED", "This booking has already been returned")
	default:
		response.Internal(c, "Error processing request")
	}
}
