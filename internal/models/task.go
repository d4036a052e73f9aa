package models

type TaskStatus string

const (
	Pending    TaskStatus = "pending"
	InProgress TaskStatus = "in_progress"
	Completed  TaskStatus = "completed"
	Failed     TaskStatus = "failed"
)

// StatusSnapshot is the fast-path view of a task kept in the cache:
// current status plus an integer percentage in [0,100].
type StatusSnapshot struct {
	Status   TaskStatus `json:"status"`
	Progress int        `json:"progress"`
}
