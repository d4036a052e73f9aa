package document

import (
	"context"
	"time"

	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/models"
)

// TaskStore is the durable side of task tracking: one document per task id,
// upserted on every status or progress change.
type TaskStore interface {
	UpsertTask(ctx context.Context, taskId string, userId string, status models.TaskStatus, progress int) error
	ListTasksForUser(ctx context.Context, userId string) ([]Task, error)
	CountTasks(ctx context.Context) (int64, error)
}

// RecordStore holds the ingested rows themselves.
type RecordStore interface {
	InsertRows(ctx context.Context, rows []map[string]string) error
	ListRows(ctx context.Context, q RowQuery) ([]map[string]any, int64, error)
}

type Task struct {
	TaskID    string            `bson:"task_id" json:"task_id"`
	UserID    string            `bson:"user_id" json:"user_id"`
	Status    models.TaskStatus `bson:"status" json:"status"`
	Progress  int               `bson:"progress" json:"progress"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at" json:"updated_at"`
}

type RowQuery struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
