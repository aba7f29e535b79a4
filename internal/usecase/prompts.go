// File: internal/usecase/prompts.go
package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"focus-guardian/internal/domain/model"
)

// Prompt builders. Every string the AI sees is rendered here so the
// handlers and adapters stay prompt-free.

func strategyPrompt(c model.ChatContext) string {
	toolNames := make([]string, 0, len(c.Tools))
	for _, t := range c.Tools {
		toolNames = append(toolNames, t.Name)
	}
	workflowNames := make([]string, 0, len(c.Workflows))
	for _, w := range c.Workflows {
		workflowNames = append(workflowNames, w.Name)
	}
	user := "User"
	if c.Profile != nil && c.Profile.Email != "" {
		user = c.Profile.Email
	}

	return fmt.Sprintf(`You are the AI Strategy Assistant for the AI Tracker platform.
Your goal is to help users optimize their AI workflows and discover better ways to use their tools.

CONTEXT:
- Current Tools: %s
- Active Workflows: %s
- User: %s

GUIDELINES:
- Be insightful, proactive, and strategic.
- Suggest specific integrations between their existing tools.
- If they ask about a workflow, offer ways to improve it using AI.
- Keep responses relatively concise but valuable.
- If they mention a tool they don't have, cross-reference it with their existing stack.`,
		orNone(toolNames), orNone(workflowNames), user)
}

func coachPrompt(c model.ChatContext) string {
	name := "User"
	if c.Profile != nil && c.Profile.Email != "" {
		name = strings.SplitN(c.Profile.Email, "@", 2)[0]
	}
	score := "Unknown"
	if c.Profile != nil {
		score = fmt.Sprintf("%d", c.Profile.FocusIntegrityScore)
	}
	var todo []string
	wishlist := 0
	for _, t := range c.Tasks {
		switch t.Status {
		case model.TaskTodo:
			todo = append(todo, t.Title)
		case model.TaskWishlist:
			wishlist++
		}
	}

	return fmt.Sprintf(`You are the Focus Guardian AI, an elite productivity strategist.
Your goal is to help the user plan their day, prioritize tasks, and recover from distractions.

CONTEXT:
- User Name: %s
- Integrity Score: %s%%
- Today's Tasks: %s
- Wishlist: %d items

Traits:
- Calm, grounded authority.
- Concise and actionable.
- Never judgmental or shaming.
- Focus on "deep work" principles (Cal Newport style).
- Use data from CONTEXT to be specific.

Do not be chatty. Get straight to the strategy.`,
		name, score, orNone(todo), wishlist)
}

func mentorSystemPrompt() string {
	return `You are the specific 'Focus Mentor' module of Focus Guardian AI.
Your job is to provide ONE short sentence (max 12 words) to keep the user focused.

Context: The user is in a deep work session.

Examples:
- "Stay with the task."
- "Return without judgment."
- "Breathe. Re-engage."
- "The work creates the flow."

Output ONLY the sentence. No quotes.`
}

func mentorUserPrompt(intent string, elapsed, duration int) string {
	return fmt.Sprintf(`Session Context: Working on %q. Elapsed: %ds / %ds. Give me guidance.`,
		intent, elapsed, duration)
}

func suggestWorkflowsPrompt(toolNames []string) string {
	return fmt.Sprintf(`Given these AI tools: %s, suggest 3 creative workflows that integrate them.
Return the response as a JSON array of objects with the following structure:
[{ "name": "string", "description": "string", "trigger": "string", "actions": [{ "type": "string", "description": "string" }] }]`,
		strings.Join(toolNames, ", "))
}

func refineWorkflowPrompt(wf *model.Workflow) string {
	actions, _ := json.Marshal(wf.Actions)
	return fmt.Sprintf(`Review and refine this AI workflow. Improve the trigger and actions to be more efficient and clear.
Current Workflow:
Name: %s
Description: %s
Trigger: %s
Actions: %s

Return the response as a JSON object with the structure:
{ "name": "string", "description": "string", "trigger": "string", "actions": [{ "type": "string", "description": "string" }] }`,
		wf.Name, wf.Description, wf.Trigger, actions)
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
