package ai_test

import (
	"context"
	"testing"

	"neuronex/internal/ai"
	"neuronex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator подменяет внешнюю модель заготовленным ответом
type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

var _ ai.Generator = (*fakeGenerator)(nil)

func sampleTasks() []*models.Task {
	return []*models.Task{
		{ID: 1, Title: "Разобрать почту", Status: models.StatusTodo, Priority: models.PriorityHigh},
		{ID: 2, Title: "Написать отчёт", Status: models.StatusInProgress, Priority: models.PriorityMedium},
	}
}

// TestAssistant_TaskPriorities тестирует разбор приоритизации
func TestAssistant_TaskPriorities(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		response    string
		genErr      error
		expectError bool
		expectLen   int
	}{
		{
			name:      "success - valid response",
			response:  `{"prioritizedTasks":[{"taskId":1,"priorityScore":90,"reasoning":"дедлайн ближе"},{"taskId":2,"priorityScore":40,"reasoning":"может подождать"}]}`,
			expectLen: 2,
		},
		{
			name:        "error - unknown field rejected",
			response:    `{"prioritizedTasks":[],"extra":"мусор"}`,
			expectError: true,
		},
		{
			name:        "error - score out of range",
			response:    `{"prioritizedTasks":[{"taskId":1,"priorityScore":150,"reasoning":"x"}]}`,
			expectError: true,
		},
		{
			name:        "error - not json at all",
			response:    "Вот ваши приоритеты: задача 1 важнее",
			expectError: true,
		},
		{
			name:        "error - upstream failure",
			genErr:      ai.ErrUpstream,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{response: tt.response, err: tt.genErr}
			assistant := ai.NewAssistant(gen)

			result, err := assistant.TaskPriorities(ctx, sampleTasks(), "утром мало сил")

			if tt.expectError {
				assert.ErrorIs(t, err, ai.ErrUpstream)
				return
			}

			require.NoError(t, err)
			assert.Len(t, result, tt.expectLen)
			assert.Equal(t, 1, result[0].TaskID)
			assert.Equal(t, 90, result[0].PriorityScore)
		})
	}
}

// TestAssistant_TaskPriorities_NoTasks проверяет, что без задач к модели не ходим
func TestAssistant_TaskPriorities_NoTasks(t *testing.T) {
	gen := &fakeGenerator{response: "не должно использоваться"}
	assistant := ai.NewAssistant(gen)

	result, err := assistant.TaskPriorities(context.Background(), nil, "")

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Empty(t, gen.prompts, "генератор не должен вызываться")
}

// TestAssistant_TimeManagement тестирует советы по тайм-менеджменту
func TestAssistant_TimeManagement(t *testing.T) {
	ctx := context.Background()

	t.Run("success - advice parsed", func(t *testing.T) {
		gen := &fakeGenerator{
			response: `{"suggestions":["начните с короткой задачи"],"techniques":["pomodoro"]}`,
		}
		assistant := ai.NewAssistant(gen)

		advice, err := assistant.TimeManagement(ctx, sampleTasks(), &models.Preferences{WorkStyle: "structured"})

		require.NoError(t, err)
		assert.Equal(t, []string{"начните с короткой задачи"}, advice.Suggestions)
		assert.Equal(t, []string{"pomodoro"}, advice.Techniques)
	})

	t.Run("success - missing arrays become empty", func(t *testing.T) {
		gen := &fakeGenerator{response: `{}`}
		assistant := ai.NewAssistant(gen)

		advice, err := assistant.TimeManagement(ctx, nil, nil)

		require.NoError(t, err)
		assert.NotNil(t, advice.Suggestions)
		assert.NotNil(t, advice.Techniques)
		assert.Empty(t, advice.Suggestions)
	})

	t.Run("error - unknown field rejected", func(t *testing.T) {
		gen := &fakeGenerator{response: `{"suggestions":[],"techniques":[],"mood":"bad"}`}
		assistant := ai.NewAssistant(gen)

		_, err := assistant.TimeManagement(ctx, nil, nil)

		assert.ErrorIs(t, err, ai.ErrUpstream)
	})
}

// TestAssistant_ImproveTask тестирует улучшение формулировки
func TestAssistant_ImproveTask(t *testing.T) {
	ctx := context.Background()

	t.Run("success - text trimmed", func(t *testing.T) {
		gen := &fakeGenerator{response: "\n  1. Открыть документ.\n2. Выписать три пункта.\n"}
		assistant := ai.NewAssistant(gen)

		improved, err := assistant.ImproveTask(ctx, "сделать отчёт")

		require.NoError(t, err)
		assert.Equal(t, "1. Открыть документ.\n2. Выписать три пункта.", improved)
	})

	t.Run("error - upstream failure passed through", func(t *testing.T) {
		gen := &fakeGenerator{err: ai.ErrUpstream}
		assistant := ai.NewAssistant(gen)

		_, err := assistant.ImproveTask(ctx, "сделать отчёт")

		assert.ErrorIs(t, err, ai.ErrUpstream)
	})
}

// TestAssistant_TaskBreakdown тестирует разбиение на подзадачи
func TestAssistant_TaskBreakdown(t *testing.T) {
	ctx := context.Background()

	t.Run("success - subtasks parsed", func(t *testing.T) {
		gen := &fakeGenerator{
			response: `{"subtasks":[{"title":"Собрать данные","description":"выгрузить цифры за месяц"},{"title":"Черновик","description":"написать без правок"}]}`,
		}
		assistant := ai.NewAssistant(gen)

		subtasks, err := assistant.TaskBreakdown(ctx, "Написать отчёт", "квартальный отчёт для команды")

		require.NoError(t, err)
		require.Len(t, subtasks, 2)
		assert.Equal(t, "Собрать данные", subtasks[0].Title)
	})

	t.Run("error - subtask without title", func(t *testing.T) {
		gen := &fakeGenerator{response: `{"subtasks":[{"title":"","description":"x"}]}`}
		assistant := ai.NewAssistant(gen)

		_, err := assistant.TaskBreakdown(ctx, "Написать отчёт", "")

		assert.ErrorIs(t, err, ai.ErrUpstream)
	})
}
