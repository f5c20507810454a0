package ai

import (
	"encoding/json"
	"fmt"

	"neuronex/internal/models"
)

// Промпты переносят в модель ровно те поля задач, что и REST-ответы,
// но без владельца и служебных полей.

type promptTask struct {
	ID          int    `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	Category    string `json:"category"`
}

func toPromptTasks(tasks []*models.Task, withIDs bool) []promptTask {
	result := make([]promptTask, len(tasks))
	for i, t := range tasks {
		pt := promptTask{
			Title:    t.Title,
			Status:   string(t.Status),
			Priority: string(t.Priority),
		}
		if withIDs {
			pt.ID = t.ID
		}
		if t.Description != nil {
			pt.Description = *t.Description
		}
		if t.DueDate != nil {
			pt.DueDate = *t.DueDate
		}
		if t.Category != nil {
			pt.Category = *t.Category
		}
		result[i] = pt
	}
	return result
}

func prioritiesPrompt(tasks []*models.Task, userContext string) string {
	if userContext == "" {
		userContext = "The user has neurodivergent traits and benefits from clear organization and prioritization."
	}
	tasksJSON, _ := json.Marshal(toPromptTasks(tasks, true))

	return fmt.Sprintf(`As an AI assistant for neurodivergent individuals, analyze the following tasks and suggest a prioritization order.
Consider task urgency, importance, due dates, current status, and the user's context.

User context: %s

Tasks: %s

Provide a JSON response with the following structure:
{
  "prioritizedTasks": [
    {
      "taskId": number,
      "priorityScore": number (1-100, higher means higher priority),
      "reasoning": "Brief explanation of why this priority was assigned"
    }
  ]
}

Focus on factors that would help a neurodivergent person manage their executive function load effectively.
Consider both urgency (due date) and importance, but also cognitive load and task complexity.`, userContext, tasksJSON)
}

func timeManagementPrompt(tasks []*models.Task, prefs *models.Preferences) string {
	tasksJSON, _ := json.Marshal(toPromptTasks(tasks, false))

	prefsMap := map[string]string{
		"workStyle":       "flexible",
		"focusPreference": "pomodoro",
		"energyLevel":     "varies throughout day",
	}
	if prefs != nil {
		if prefs.WorkStyle != "" {
			prefsMap["workStyle"] = prefs.WorkStyle
		}
		if prefs.FocusPreference != "" {
			prefsMap["focusPreference"] = prefs.FocusPreference
		}
		if prefs.EnergyLevel != "" {
			prefsMap["energyLevel"] = prefs.EnergyLevel
		}
	}
	prefsJSON, _ := json.Marshal(prefsMap)

	return fmt.Sprintf(`As an AI assistant for neurodivergent individuals, provide time management suggestions based on the following tasks and user preferences.

Tasks: %s
User preferences: %s

Generate JSON with two arrays:
1. 'suggestions': List of 3-5 specific, actionable time management suggestions based on the tasks
2. 'techniques': List of 2-3 neurodivergent-friendly time management techniques that could work well for these tasks

Format your response as:
{
  "suggestions": ["suggestion 1", "suggestion 2", "suggestion 3"],
  "techniques": ["technique 1", "technique 2"]
}

Focus on approaches that reduce executive function load and accommodate variable focus and energy levels.`, tasksJSON, prefsJSON)
}

func improveClarityPrompt(description string) string {
	return fmt.Sprintf(`As an AI assistant for neurodivergent individuals, improve the clarity of the following task description.
Break down vague instructions, highlight key steps, and make the task more concrete and actionable.

Original task description: %q

Return only the improved task description, without any explanation or meta-commentary.
Focus on clarity, specificity, and creating a structure that reduces cognitive load.`, description)
}

func breakdownPrompt(title, description string) string {
	return fmt.Sprintf(`As an AI assistant for neurodivergent individuals, break down the following complex task into smaller, more manageable subtasks.

Task title: %q
Task description: %q

Create 3-5 subtasks that:
1. Have clear, concrete objectives
2. Can be completed in a single focused session
3. Have a logical sequence
4. Reduce cognitive load by having clear starting and ending points

Return a JSON object with the following structure:
{
  "subtasks": [
    {
      "title": "Subtask title",
      "description": "Detailed but concise subtask description"
    }
  ]
}`, title, description)
}
