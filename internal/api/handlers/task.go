package handlers

import (
	"github.com/m04kA/SMC-ShowtimeService/pkg/taskrunner"
)

// TaskResponse is returned with 202 Accepted and by GET /tasks/{taskId}
type TaskResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Status      string      `json:"status"`
	Result      interface{} `json:"result,omitempty"`
	Error       string      `json:"error,omitempty"`
	SubmittedAt string      `json:"submittedAt"`
	StartedAt   *string     `json:"startedAt,omitempty"`
	FinishedAt  *string     `json:"finishedAt,omitempty"`
	Location    string      `json:"location"`
}

// FromTask converts a task snapshot. resultOf renders the result of finished tasks.
func FromTask(t taskrunner.Task, resultOf func(interface{}) interface{}) *TaskResponse {
	resp := &TaskResponse{
		ID:          t.ID,
		Name:        t.Name,
		Status:      string(t.Status),
		Error:       t.Error,
		SubmittedAt: FormatTime(t.SubmittedAt),
		Location:    "/api/v1/tasks/" + t.ID,
	}
	if t.StartedAt != nil {
		s := FormatTime(*t.StartedAt)
		resp.StartedAt = &s
	}
	if t.FinishedAt != nil {
		s := FormatTime(*t.FinishedAt)
		resp.FinishedAt = &s
	}
	if t.Result != nil && resultOf != nil {
		resp.Result = resultOf(t.Result)
	}
	return resp
}
