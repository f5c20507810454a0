package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"neuronex/internal/models"
)

type TaskPriority struct {
	TaskID        int    `json:"taskId"`
	PriorityScore int    `json:"priorityScore"`
	Reasoning     string `json:"reasoning"`
}

type TimeManagementAdvice struct {
	Suggestions []string `json:"suggestions"`
	Techniques  []string `json:"techniques"`
}

type Subtask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Assistant оборачивает генератор в типизированные операции.
// Ответ модели разбирается строго: один проход json.Decoder без
// неизвестных полей, никаких попыток выковырять json регулярками.
type Assistant struct {
	gen Generator
}

func NewAssistant(gen Generator) *Assistant {
	return &Assistant{gen: gen}
}

func decodeStrict(raw string, target any) error {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: неразборчивый ответ: %v", ErrUpstream, err)
	}
	return nil
}

func (a *Assistant) TaskPriorities(ctx context.Context, tasks []*models.Task, userContext string) ([]TaskPriority, error) {
	// без задач нечего приоритизировать, к модели не ходим
	if len(tasks) == 0 {
		return []TaskPriority{}, nil
	}

	raw, err := a.gen.GenerateJSON(ctx, prioritiesPrompt(tasks, userContext))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		PrioritizedTasks []TaskPriority `json:"prioritizedTasks"`
	}
	if err := decodeStrict(raw, &parsed); err != nil {
		return nil, err
	}

	for _, p := range parsed.PrioritizedTasks {
		if p.PriorityScore < 1 || p.PriorityScore > 100 {
			return nil, fmt.Errorf("%w: priorityScore %d вне диапазона 1-100", ErrUpstream, p.PriorityScore)
		}
	}

	return parsed.PrioritizedTasks, nil
}

func (a *Assistant) TimeManagement(ctx context.Context, tasks []*models.Task, prefs *models.Preferences) (*TimeManagementAdvice, error) {
	raw, err := a.gen.GenerateJSON(ctx, timeManagementPrompt(tasks, prefs))
	if err != nil {
		return nil, err
	}

	var advice TimeManagementAdvice
	if err := decodeStrict(raw, &advice); err != nil {
		return nil, err
	}

	if advice.Suggestions == nil {
		advice.Suggestions = []string{}
	}
	if advice.Techniques == nil {
		advice.Techniques = []string{}
	}

	return &advice, nil
}

func (a *Assistant) ImproveTask(ctx context.Context, description string) (string, error) {
	raw, err := a.gen.GenerateText(ctx, improveClarityPrompt(description))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func (a *Assistant) TaskBreakdown(ctx context.Context, title, description string) ([]Subtask, error) {
	raw, err := a.gen.GenerateJSON(ctx, breakdownPrompt(title, description))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Subtasks []Subtask `json:"subtasks"`
	}
	if err := decodeStrict(raw, &parsed); err != nil {
		return nil, err
	}

	for _, sub := range parsed.Subtasks {
		if sub.Title == "" {
			return nil, fmt.Errorf("%w: подзадача без названия", ErrUpstream)
		}
	}

	return parsed.Subtasks, nil
}
