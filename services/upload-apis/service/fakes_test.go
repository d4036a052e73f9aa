package service

import (
	"context"
	"io"
	"sync"
	"time"

	apperrors "github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/errors"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/models"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/pubsub"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/store/document"
)

type fakeTaskStore struct {
	mu        sync.Mutex
	tasks     map[string]document.Task
	history   map[string][]document.Task
	upsertErr error
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{
		tasks:   map[string]document.Task{},
		history: map[string][]document.Task{},
	}
}

func (f *fakeTaskStore) UpsertTask(ctx context.Context, taskId string, userId string, status models.TaskStatus, progress int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.upsertErr != nil {
		return f.upsertErr
	}

	now := time.Now().UTC()
	t, ok := f.tasks[taskId]
	if !ok {
		t = document.Task{TaskID: taskId, UserID: userId, CreatedAt: now}
	}
	t.UserID = userId
	t.Status = status
	t.Progress = progress
	t.UpdatedAt = now

	f.tasks[taskId] = t
	f.history[taskId] = append(f.history[taskId], t)
	return nil
}

func (f *fakeTaskStore) ListTasksForUser(ctx context.Context, userId string) ([]document.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []document.Task{}
	for _, t := range f.tasks {
		if t.UserID == userId {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) CountTasks(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.tasks)), nil
}

func (f *fakeTaskStore) get(taskId string) (document.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskId]
	return t, ok
}

func (f *fakeTaskStore) transitions(taskId string) []document.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]document.Task(nil), f.history[taskId]...)
}

type fakeRecordStore struct {
	mu      sync.Mutex
	batches [][]map[string]string
	calls   int
	failOn  int // 1-based insert call that fails, 0 never fails
	lastCtx context.Context
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{}
}

func (f *fakeRecordStore) InsertRows(ctx context.Context, rows []map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.lastCtx = ctx
	if f.failOn != 0 && f.calls >= f.failOn {
		return apperrors.New(apperrors.ErrCodeInternal, "record store unavailable", nil)
	}

	batch := make([]map[string]string, len(rows))
	copy(batch, rows)
	f.batches = append(f.batches, batch)
	return nil
}

func (f *fakeRecordStore) ListRows(ctx context.Context, q document.RowQuery) ([]map[string]any, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := []map[string]any{}
	for _, batch := range f.batches {
		for _, row := range batch {
			item := map[string]any{}
			for k, v := range row {
				item[k] = v
			}
			items = append(items, item)
		}
	}

	total := int64(len(items))
	start := (q.Page - 1) * q.PageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + q.PageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], total, nil
}

func (f *fakeRecordStore) capturedCtx() context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCtx
}

func (f *fakeRecordStore) batchSizes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()

	sizes := make([]int, 0, len(f.batches))
	for _, b := range f.batches {
		sizes = append(sizes, len(b))
	}
	return sizes
}

func (f *fakeRecordStore) rowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

type fakeStatusStore struct {
	mu     sync.Mutex
	seq    map[string][]models.StatusSnapshot
	setErr error
}

func newFakeStatusStore() *fakeStatusStore {
	return &fakeStatusStore{seq: map[string][]models.StatusSnapshot{}}
}

func (f *fakeStatusStore) SetStatus(ctx context.Context, taskId string, status models.TaskStatus, progress int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setErr != nil {
		return f.setErr
	}

	f.seq[taskId] = append(f.seq[taskId], models.StatusSnapshot{Status: status, Progress: progress})
	return nil
}

func (f *fakeStatusStore) GetStatus(ctx context.Context, taskId string) (models.StatusSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	seq := f.seq[taskId]
	if len(seq) == 0 {
		return models.StatusSnapshot{}, apperrors.New(apperrors.ErrCodeNotFound, "task not found", nil)
	}
	return seq[len(seq)-1], nil
}

func (f *fakeStatusStore) Shutdown(ctx context.Context) error { return nil }

func (f *fakeStatusStore) snapshots(taskId string) []models.StatusSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.StatusSnapshot(nil), f.seq[taskId]...)
}

type fakeEventProducer struct {
	mu     sync.Mutex
	events []pubsub.TaskEvent
}

func (f *fakeEventProducer) Produce(ctx context.Context, event pubsub.TaskEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventProducer) Shutdown() {}

func (f *fakeEventProducer) all() []pubsub.TaskEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]pubsub.TaskEvent(nil), f.events...)
}

type fakeArchive struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{blobs: map[string][]byte{}}
}

func (f *fakeArchive) UploadBlob(ctx context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[path] = data
	return nil
}

func (f *fakeArchive) Shutdown(ctx context.Context) error { return nil }
