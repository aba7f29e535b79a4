package model

import "time"

// WorkflowAction is one step inside a workflow.
type WorkflowAction struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Workflow describes an automation built on top of the user's tools.
type Workflow struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Trigger     string           `json:"trigger,omitempty"`
	Actions     []WorkflowAction `json:"actions,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func NewWorkflow(id, userID, name string) *Workflow {
	now := time.Now()
	return &Workflow{
		ID:        id,
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WorkflowDraft is an AI-generated workflow proposal before the user saves it.
type WorkflowDraft struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Trigger     string           `json:"trigger"`
	Actions     []WorkflowAction `json:"actions"`
}
