package ai

import (
	"context"
	"errors"
	"fmt"

	"neuronex/internal/logger"

	"google.golang.org/genai"
)

const systemPrompt = "You are a specialized AI assistant for a neurodivergent-friendly project management platform."

// ErrUpstream помечает любой сбой внешней модели: сетевую ошибку, пустой
// ответ или ответ, не прошедший строгий разбор. Наружу это всегда 502.
var ErrUpstream = errors.New("ошибка внешней модели")

// Generator - узкая прослойка над внешней моделью, чтобы Assistant
// тестировался без сети.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("не задан API ключ Gemini")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("создание клиента Gemini: %w", err)
	}

	logger.Info("AI: Клиент Gemini инициализирован")
	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

// GenerateJSON просит у модели ответ строго в application/json.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.2),
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
}

func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.2),
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		logger.Error("AI: Ошибка запроса к модели", err)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	text := resp.Text()
	if text == "" {
		logger.Warn("AI: Модель вернула пустой ответ")
		return "", fmt.Errorf("%w: пустой ответ", ErrUpstream)
	}

	return text, nil
}
