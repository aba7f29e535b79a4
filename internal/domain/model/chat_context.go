package model

// ChatContext is the structured metadata a client attaches to a chat turn.
// The client forwards it verbatim; only the server-side prompt builder
// interprets the contents. JSON keys match the web client payload.
type ChatContext struct {
	Tools     []Tool       `json:"tools,omitempty"`
	Workflows []Workflow   `json:"workflows,omitempty"`
	Tasks     []Task       `json:"tasks,omitempty"`
	Stats     *UserStats   `json:"stats,omitempty"`
	Profile   *UserProfile `json:"userProfile,omitempty"`
}
