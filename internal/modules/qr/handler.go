package qr

import (
	"net/http"
	"strconv"

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
	qr := rg.Group("/qr")
	{
		qr.POST("/equipment/:id/generate", h.GenerateEquipmentQR)
		qr.POST("/booking/:id/generate", h.GenerateBookingQR)
		qr.POST("/equipment/validate", h.ValidateEquipmentQR)
		qr.POST("/booking/validate", h.ValidateBookingQR)
		qr.POST("/check-in", h.CheckIn)
		qr.POST("/check-out", h.CheckOut)
		qr.GET("/scan/:qrData", h.Scan)
	}
}

func (h *Handler) GenerateEquipmentQR(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid equipment ID")
		return
	}

	res, err := h.service.GenerateEquipmentQR(c.Request.Context(), id)
	if err != nil {
		if err == ErrEquipmentNotFound {
			response.NotFound(c, "Equipment not found")
			return
		}
		response.Internal(c, "Failed to generate QR code")
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GenerateBookingQR(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	action := c.DefaultQuery("action", "CHECK_IN")

	res, err := h.service.GenerateBookingQR(c.Request.Context(), id, action)
	if err != nil {
		if err == ErrBookingNotFound {
			response.NotFound(c, "Booking not found")
			return
		}
		response.Internal(c, "Failed to generate booking QR code")
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ValidateEquipmentQR(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "QR data is required")
		return
	}

	v := h.service.ValidateEquipmentToken(req.QRData)
	if !v.Valid {
		response.Success(c, http.StatusOK, v)
		return
	}

	eq, err := h.service.equipment.GetByID(c.Request.Context(), v.EquipmentID)
	if err != nil {
		response.Internal(c, "Failed to load equipment")
		return
	}
	if eq == nil {
		response.NotFound(c, "Equipment not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"validation": v,
		"equipment":  eq,
		"available":  eq.Available,
	})
}

func (h *Handler) ValidateBookingQR(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "QR data is required")
		return
	}

	v := h.service.ValidateBookingToken(req.QRData)
	if !v.Valid {
		response.Success(c, http.StatusOK, v)
		return
	}

	b, err := h.service.bookings.GetByID(c.Request.Context(), v.BookingID)
	if err != nil {
		response.Internal(c, "Failed to load booking")
		return
	}
	if b == nil {
		response.NotFound(c, "Booking not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"validation": v,
		"booking":    b,
	})
}

func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Booking ID and QR data are required")
		return
	}

	b, err := h.service.CheckIn(c.Request.Context(), req.BookingID, req.QRData)
	if err != nil {
		h.checkError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"booking":          b,
		"check_in_time":    b.CheckInTime,
		"equipment_status": "in-use",
	})
}

func (h *Handler) CheckOut(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Booking ID and QR data are required")
		return
	}

	b, err := h.service.CheckOut(c.Request.Context(), req.BookingID, req.QRData)
	if err != nil {
		h.checkError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"booking":          b,
		"check_out_time":   b.CheckOutTime,
		"equipment_status": "available",
	})
}

func (h *Handler) Scan(c *gin.Context) {
	eq, err := h.service.ScanEquipment(c.Request.Context(), c.Param("qrData"))
	if err != nil {
		if err == ErrInvalidToken || err == ErrEquipmentNotFound {
			response.NotFound(c, "Invalid QR code or equipment not found")
			return
		}
		response.Internal(c, "Failed to scan QR code")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"equipment": eq,
		"qr_valid":  true,
		"available": eq.Available,
	})
}

func (h *Handler) checkError(c *gin.Context, err error) {
	switch err {
	case ErrBookingNotFound:
		response.NotFound(c, "Booking not found")
	case ErrEquipmentNotFound:
		response.NotFound(c, "Equipment not found")
	case ErrTokenMismatch:
		response.BadRequest(c, "QR code does not match equipment")
	case ErrNotCheckedIn:
		response.BadRequest(c, "Equipment must be checked in before check-out")
	default:
		response.Internal(c, "QR operation failed")
	}
}
