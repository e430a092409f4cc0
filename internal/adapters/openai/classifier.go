package openai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mikey/phish-detector/internal/core"
	"github.com/mikey/phish-detector/internal/utils"
)

// Classifier is a URLClassifier backed by an OpenAI chat model
type Classifier struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxInputSize  int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClassifier creates a new OpenAI classifier
func NewClassifier(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxInputSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Classifier {
	return &Classifier{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxInputSize:  maxInputSize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Classify asks the model whether the URL is phishing
func (c *Classifier) Classify(ctx context.Context, url string) core.Verdict {
	prompt := utils.URLPrompt(c.textProcessor.ProcessText(url, c.maxInputSize))

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: utils.URLSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Warn("OpenAI chat completion failed",
			zap.String("model", c.modelName),
			zap.String("url", url),
			zap.Error(err))
		return core.Unavailable(c.modelName, err)
	}

	if len(resp.Choices) == 0 {
		return core.Unavailable(c.modelName, errors.New("empty response from OpenAI"))
	}

	phishing, explanation, err := utils.ParseURLAnswer(resp.Choices[0].Message.Content)
	if err != nil {
		return core.Unavailable(c.modelName, err)
	}

	v := core.Legitimate(c.modelName)
	if phishing {
		v = core.Phishing(c.modelName)
	}
	v.Detail = explanation
	return v
}
