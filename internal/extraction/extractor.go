package extraction

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Extractor sends one invoice page image to the extraction service and
// returns the raw JSON payload. The response is untrusted data; the
// validator decides whether it is usable.
type Extractor interface {
	Extract(ctx context.Context, image []byte) (string, error)
}

// VisionExtractor extracts invoice data from page images using the
// OpenAI chat completion API with vision input. The client is stateless
// and safe to share across concurrent requests.
type VisionExtractor struct {
	client       *openai.Client
	model        string
	systemPrompt string
	temperature  float32
	maxTokens    int
	logger       *zap.Logger
}

// VisionExtractorConfig holds the extraction service parameters.
type VisionExtractorConfig struct {
	APIKey      string
	Model       string
	CompanyName string
	Temperature float32
	MaxTokens   int
}

// NewVisionExtractor creates an extractor bound to the given reference
// company.
func NewVisionExtractor(cfg VisionExtractorConfig, logger *zap.Logger) *VisionExtractor {
	return &VisionExtractor{
		client:       openai.NewClient(cfg.APIKey),
		model:        cfg.Model,
		systemPrompt: BuildSystemPrompt(cfg.CompanyName),
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxTokens,
		logger:       logger,
	}
}

// Extract submits a single PNG page image and returns the model's raw
// JSON response.
func (e *VisionExtractor) Extract(ctx context.Context, image []byte) (string, error) {
	base64Img := base64.StdEncoding.EncodeToString(image)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: e.systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    fmt.Sprintf("data:image/png;base64,%s", base64Img),
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("extraction call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from extraction service")
	}

	content := resp.Choices[0].Message.Content
	e.logger.Debug("Extraction response received", zap.Int("content_length", len(content)))

	return content, nil
}
