package transport

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/errors"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/models"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/service"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/store/document"
)

type UploadService interface {
	Launch(ctx context.Context, userId string, file *multipart.FileHeader) (string, error)
	TasksForUser(ctx context.Context, userId string) ([]service.TaskView, error)
	Status(ctx context.Context, taskId string) (models.StatusSnapshot, error)
	Rows(ctx context.Context, q document.RowQuery) (service.RowPage, error)
}

type UploadHandler struct {
	us UploadService
}

func NewUploadHandler(us UploadService) *UploadHandler {
	return &UploadHandler{us: us}
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	userId := c.Query("user_id", c.FormValue("user_id"))

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no file part"})
	}

	taskId, err := h.us.Launch(c.Context(), userId, file)
	if err != nil {
		return mapErr(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"task_id": taskId,
		"user_id": userId,
	})
}

func (h *UploadHandler) Tasks(c *fiber.Ctx) error {
	userId := c.Params("userId")

	if userId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	tasks, err := h.us.TasksForUser(c.Context(), userId)
	if err != nil {
		return mapErr(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"tasks": tasks})
}

func (h *UploadHandler) Status(c *fiber.Ctx) error {
	taskId := c.Params("taskId")

	if taskId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid task id"})
	}

	snapshot, err := h.us.Status(c.Context(), taskId)
	if err != nil {
		return mapErr(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"task_id":  taskId,
		"status":   snapshot.Status,
		"progress": snapshot.Progress,
	})
}

func (h *UploadHandler) Data(c *fiber.Ctx) error {
	q := document.RowQuery{
		Page:      c.QueryInt("page", 1),
		PageSize:  c.QueryInt("page_size", 10),
		SortBy:    c.Query("sort_by", "date_added"),
		SortOrder: c.Query("order", "desc"),
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	if q.SortOrder != "asc" && q.SortOrder != "desc" {
		q.SortOrder = "desc"
	}

	page, err := h.us.Rows(c.Context(), q)
	if err != nil {
		return mapErr(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

func mapErr(c *fiber.Ctx, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.MapToHttpCode()).JSON(fiber.Map{"error": appErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
}
