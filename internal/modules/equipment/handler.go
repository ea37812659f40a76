package equipment

import (
	"net/http"
	"strconv"

	"equiprent/internal/domain"
	"equiprent/internal/pkg/response"
	"equiprent/internal/pkg/validator"
	"equiprent/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes browse endpoints that need no token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/equipment", h.List)
	rg.GET("/equipment/:id", h.Get)
}

// RegisterProtectedRoutes exposes operator-side management.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/equipment", h.Create)
	rg.PATCH("/equipment/:id/status", h.UpdateStatus)
}

func (h *Handler) List(c *gin.Context) {
	f := repository.EquipmentFilter{
		Category:      c.Query("category"),
		AvailableOnly: c.Query("available") == "true",
	}

	items, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Internal(c, "Failed to list equipment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"equipment": items})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid equipment ID")
		return
	}

	eq, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(c, "Equipment not found")
			return
		}
		response.Internal(c, "Failed to load equipment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"equipment": eq})
}

func (h *Handler) Create(c *gin.Context) {
	if domain.UserRole(c.GetString("role")) != domain.RoleOperator {
		response.Forbidden(c, "Only operators can add equipment")
		return
	}

	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment payload", details)
		return
	}

	eq, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.Internal(c, "Failed to create equipment")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"equipment": eq})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid equipment ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	eq, err := h.service.UpdateStatus(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(c, "Equipment not found")
		case ErrForbidden:
			response.Forbidden(c, "You do not operate this equipment")
		default:
			response.Internal(c, "Failed to update equipment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"equipment": eq})
}
