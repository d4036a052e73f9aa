package service

import (
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/models"
)

type TaskView struct {
	TaskID   string            `json:"task_id"`
	Status   models.TaskStatus `json:"status"`
	Progress int               `json:"progress"`
}

type RowPage struct {
	Items      []map[string]any `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int64            `json:"total_pages"`
	TotalCount int64            `json:"total_count"`
	SortBy     string           `json:"sort_by"`
	SortOrder  string           `json:"sort_order"`
}
