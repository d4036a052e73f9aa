package service

import (
	"context"

	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/models"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/store/document"
)

func (s *uploadService) TasksForUser(ctx context.Context, userId string) ([]TaskView, error) {
	tasks, err := s.tasks.ListTasksForUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, TaskView{TaskID: t.TaskID, Status: t.Status, Progress: t.Progress})
	}

	return views, nil
}

func (s *uploadService) Status(ctx context.Context, taskId string) (models.StatusSnapshot, error) {
	return s.status.GetStatus(ctx, taskId)
}

func (s *uploadService) Rows(ctx context.Context, q document.RowQuery) (RowPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}

	items, total, err := s.records.ListRows(ctx, q)
	if err != nil {
		return RowPage{}, err
	}

	pageSize := int64(q.PageSize)
	return RowPage{
		Items:      items,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
		TotalCount: total,
		SortBy:     q.SortBy,
		SortOrder:  q.SortOrder,
	}, nil
}
