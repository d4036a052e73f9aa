package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/models"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/pubsub"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/reader"
)

// run executes one ingestion task to a terminal state. It owns every write
// for its task id and never reports errors to the submitter; anything that
// goes wrong becomes the Failed transition.
func (s *uploadService) run(ctx context.Context, taskId string, userId string, filePath string) {
	if err := s.tasks.UpsertTask(ctx, taskId, userId, models.InProgress, 0); err != nil {
		slog.Error("Failed to start task", "taskId", taskId, "error", err)
		s.fail(ctx, taskId, userId)
		return
	}
	if err := s.status.SetStatus(ctx, taskId, models.InProgress, 0); err != nil {
		slog.Error("Failed to publish status to cache", "taskId", taskId, "error", err)
	}

	cr := reader.NewChunkedReader(filePath, s.cfg.BatchSize)

	totalRows, err := cr.CountRows()
	if err != nil {
		slog.Error("Failed to count rows", "taskId", taskId, "error", err)
		s.fail(ctx, taskId, userId)
		return
	}

	// Header-only file: nothing to insert, the task is already done.
	if totalRows == 0 {
		s.complete(ctx, taskId, userId, 0, filePath)
		return
	}

	it, err := cr.Open()
	if err != nil {
		slog.Error("Failed to open file", "taskId", taskId, "error", err)
		s.fail(ctx, taskId, userId)
		return
	}
	defer it.Close()

	rowsProcessed := 0
	for {
		batch, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Error("Failed to read batch", "taskId", taskId, "error", err)
			s.fail(ctx, taskId, userId)
			return
		}

		if err := s.records.InsertRows(ctx, batch); err != nil {
			slog.Error("Failed to insert batch", "taskId", taskId, "rows", len(batch), "error", err)
			s.fail(ctx, taskId, userId)
			return
		}

		rowsProcessed += len(batch)
		s.publish(ctx, taskId, userId, models.InProgress, rowsProcessed*100/totalRows)
	}

	s.complete(ctx, taskId, userId, rowsProcessed, filePath)
}

// publish dual-writes a status snapshot: cache first for readers polling the
// fast path, then the durable record. Rows already committed are never
// rolled back, so publication failures are logged and the run continues.
func (s *uploadService) publish(ctx context.Context, taskId string, userId string, status models.TaskStatus, progress int) {
	if err := s.status.SetStatus(ctx, taskId, status, progress); err != nil {
		slog.Error("Failed to publish status to cache", "taskId", taskId, "error", err)
	}
	if err := s.tasks.UpsertTask(ctx, taskId, userId, status, progress); err != nil {
		slog.Error("Failed to publish status to store", "taskId", taskId, "error", err)
	}
}

func (s *uploadService) complete(ctx context.Context, taskId string, userId string, rows int, filePath string) {
	s.publish(ctx, taskId, userId, models.Completed, 100)
	s.emit(ctx, pubsub.TaskEvent{TaskId: taskId, UserId: userId, Status: models.Completed, Progress: 100, Rows: rows})
	s.archiveSource(ctx, taskId, filePath)
}

func (s *uploadService) fail(ctx context.Context, taskId string, userId string) {
	s.publish(ctx, taskId, userId, models.Failed, 0)
	s.emit(ctx, pubsub.TaskEvent{TaskId: taskId, UserId: userId, Status: models.Failed, Progress: 0})
}

func (s *uploadService) emit(ctx context.Context, event pubsub.TaskEvent) {
	if s.events == nil {
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.events.Produce(timeoutCtx, event); err != nil {
		slog.Error("Failed to emit task event", "taskId", event.TaskId, "error", err)
	}
}

func (s *uploadService) archiveSource(ctx context.Context, taskId string, filePath string) {
	if s.archive == nil {
		return
	}

	f, err := os.Open(filePath)
	if err != nil {
		slog.Error("Failed to open source for archival", "taskId", taskId, "error", err)
		return
	}
	defer f.Close()

	if err := s.archive.UploadBlob(ctx, filepath.Base(filePath), f); err != nil {
		slog.Error("Failed to archive source file", "taskId", taskId, "error", err)
		return
	}

	if err := os.Remove(filePath); err != nil {
		slog.Error("Failed to remove archived upload", "taskId", taskId, "error", err)
	}
}
