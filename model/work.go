package model

import "time"

type Task struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body,omitempty"`
	AssigneeID string    `json:"assignee_id,omitempty"`
	Status     string    `json:"status"` // "todo", "in_progress", "done"
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Worklog struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	MemberID  string    `json:"member_id"`
	Minutes   int       `json:"minutes"`
	Note      string    `json:"note,omitempty"`
	LoggedAt  time.Time `json:"logged_at"`
	CreatedAt time.Time `json:"created_at"`
}
