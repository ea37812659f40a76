package booking

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
