package cache

import (
	"context"

	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/models"
)

// StatusStore is the low-latency polling side of task tracking. It mirrors
// the durable task record but is not authoritative for history.
type StatusStore interface {
	SetStatus(ctx context.Context, taskId string, status models.TaskStatus, progress int) error
	GetStatus(ctx context.Context, taskId string) (models.StatusSnapshot, error)
	Shutdown(ctx context.Context) error
}
