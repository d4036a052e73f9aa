package document

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/errors"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/models"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/config"
)

// MongoStore backs both the task metadata store and the record store with
// one client. Tasks live in upload_tasks, ingested rows in movies_data.
type MongoStore struct {
	client  *mongo.Client
	tasks   *mongo.Collection
	records *mongo.Collection
}

func NewMongoStore(cfg config.DocumentCfg) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.MongoDatabase)
	return &MongoStore{
		client:  client,
		tasks:   db.Collection("upload_tasks"),
		records: db.Collection("movies_data"),
	}, nil
}

func (m *MongoStore) UpsertTask(ctx context.Context, taskId string, userId string, status models.TaskStatus, progress int) error {
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"user_id":    userId,
			"status":     status,
			"progress":   progress,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	_, err := m.tasks.UpdateOne(ctx, bson.M{"task_id": taskId}, update, options.Update().SetUpsert(true))
	if err != nil {
		return apperrors.New(apperrors.ErrCodeInternal, "failed to upsert task", err)
	}

	return nil
}

func (m *MongoStore) ListTasksForUser(ctx context.Context, userId string) ([]Task, error) {
	cur, err := m.tasks.Find(ctx, bson.M{"user_id": userId})
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "failed to list tasks", err)
	}

	tasks := []Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "failed to decode tasks", err)
	}

	return tasks, nil
}

func (m *MongoStore) CountTasks(ctx context.Context) (int64, error) {
	count, err := m.tasks.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.New(apperrors.ErrCodeInternal, "failed to count tasks", err)
	}

	return count, nil
}

func (m *MongoStore) InsertRows(ctx context.Context, rows []map[string]string) error {
	if len(rows) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row)
	}

	if _, err := m.records.InsertMany(ctx, docs); err != nil {
		return apperrors.New(apperrors.ErrCodeInternal, "failed to insert rows", err)
	}

	return nil
}

func (m *MongoStore) ListRows(ctx context.Context, q RowQuery) ([]map[string]any, int64, error) {
	order := 1
	if q.SortOrder == "desc" {
		order = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: q.SortBy, Value: order}}).
		SetSkip(int64(q.Page-1) * int64(q.PageSize)).
		SetLimit(int64(q.PageSize)).
		SetProjection(bson.M{"_id": 0})

	cur, err := m.records.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, apperrors.New(apperrors.ErrCodeInternal, "failed to list rows", err)
	}

	items := []map[string]any{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, apperrors.New(apperrors.ErrCodeInternal, "failed to decode rows", err)
	}

	total, err := m.records.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, apperrors.New(apperrors.ErrCodeInternal, "failed to count rows", err)
	}

	return items, total, nil
}

func (m *MongoStore) Shutdown(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
