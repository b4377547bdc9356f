package dto

import "time"

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=120"`
	Description string `json:"description" binding:"max=1000"`
	Status      string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
}

// UpdateTaskRequest carries a partial update: nil = leave unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Status      *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
}

type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
