package pubsub

import (
	"context"

	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/models"
)

type TaskEventProducer interface {
	Produce(ctx context.Context, event TaskEvent) error
	Shutdown()
}

// TaskEvent is published on every task lifecycle transition so downstream
// consumers can react without polling the stores.
type TaskEvent struct {
	TaskId   string            `json:"task_id"`
	UserId   string            `json:"user_id"`
	Status   models.TaskStatus `json:"status"`
	Progress int               `json:"progress"`
	Rows     int               `json:"rows"`
}
