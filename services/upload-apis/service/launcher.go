package service

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	apperrors "github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/errors"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/models"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/config"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/pubsub"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/store/blob"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/store/cache"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/store/document"
)

type uploadService struct {
	tasks   document.TaskStore
	records document.RecordStore
	status  cache.StatusStore
	events  pubsub.TaskEventProducer // optional, nil disables lifecycle events
	archive blob.ArchiveStorage      // optional, nil disables source archival
	wp      *ants.Pool
	cfg     config.IngestCfg
}

func NewUploadService(
	tasks document.TaskStore,
	records document.RecordStore,
	status cache.StatusStore,
	events pubsub.TaskEventProducer,
	archive blob.ArchiveStorage,
	wp *ants.Pool,
	cfg config.IngestCfg,
) *uploadService {
	return &uploadService{
		tasks:   tasks,
		records: records,
		status:  status,
		events:  events,
		archive: archive,
		wp:      wp,
		cfg:     cfg,
	}
}

// Launch validates the upload, persists the initial task record and hands
// the ingestion run to the worker pool. It returns before ingestion starts;
// callers follow the task through the polling APIs.
func (s *uploadService) Launch(ctx context.Context, userId string, file *multipart.FileHeader) (string, error) {
	if userId == "" {
		return "", apperrors.New(apperrors.ErrCodeValidation, "user id is required", nil)
	}
	if file == nil || file.Filename == "" {
		return "", apperrors.New(apperrors.ErrCodeValidation, "no selected file", nil)
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
		return "", apperrors.New(apperrors.ErrCodeValidation, "invalid file format, only CSV is allowed", nil)
	}
	if file.Size == 0 {
		return "", apperrors.New(apperrors.ErrCodeValidation, "uploaded file is empty", nil)
	}
	if file.Size > s.cfg.MaxUploadBytes {
		return "", apperrors.New(apperrors.ErrCodeValidation, "file size exceeds the maximum limit", nil)
	}

	taskId := uuid.NewString()

	filePath, err := s.saveUpload(file, taskId)
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeInternal, "failed to store uploaded file", err)
	}

	if err := s.tasks.UpsertTask(ctx, taskId, userId, models.Pending, 0); err != nil {
		os.Remove(filePath)
		return "", err
	}
	if err := s.status.SetStatus(ctx, taskId, models.Pending, 0); err != nil {
		// fast path only mirrors the durable record
		slog.Error("Failed to mirror pending status", "taskId", taskId, "error", err)
	}

	// The run must outlive the request that launched it, and the request
	// context is pooled by the server once the handler returns, so the run
	// gets a fresh root context instead of a derived one.
	runCtx := context.Background()
	if err := s.wp.Submit(func() { s.run(runCtx, taskId, userId, filePath) }); err != nil {
		s.publish(runCtx, taskId, userId, models.Failed, 0)
		os.Remove(filePath)
		return "", apperrors.New(apperrors.ErrCodeInternal, "failed to schedule ingestion", err)
	}

	return taskId, nil
}

func (s *uploadService) saveUpload(file *multipart.FileHeader, taskId string) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Name by task id so identical filenames never collide.
	dst := filepath.Join(s.cfg.UploadDir, taskId+".csv")
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", err
	}

	return dst, out.Close()
}
