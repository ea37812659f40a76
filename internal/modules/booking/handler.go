package booking

import (
	"errors"
	"net/http"
	"strconv"

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
	bookings := rg.Group("/bookings")
	{
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.POST("/mark-overdue", h.MarkOverdue)
	}
}

// List returns the caller's bookings; operators see the bookings placed on
// their equipment.
func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var (
		items []domain.Booking
		err   error
	)
	if domain.UserRole(c.GetString("role")) == domain.RoleOperator {
		items, err = h.service.GetOperatorBookings(c.Request.Context(), userID)
	} else {
		items, err = h.service.GetMyBookings(c.Request.Context(), userID)
	}
	if err != nil {
		response.Internal(c, "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, c.GetInt64("user_id"), domain.BookingStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) MarkOverdue(c *gin.Context) {
	if domain.UserRole(c.GetString("role")) != domain.RoleOperator {
		response.Forbidden(c, "Only operators can flag overdue bookings")
		return
	}

	flagged, err := h.service.MarkOverdue(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Internal(c, "Failed to flag overdue bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"flagged": flagged})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "You have no access to this booking")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking cannot move to the requested status")
	default:
		response.Internal(c, "Booking operation failed")
	}
}
