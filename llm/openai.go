package llm

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/voice-companion/config"
)

// AzureOpenAIClient calls a chat deployment on Azure OpenAI.
type AzureOpenAIClient struct {
	Client     *openai.Client
	Deployment string
	log        *logrus.Entry
}

func NewAzureOpenAIClient(cfg config.OpenAIConfig, log *logrus.Entry) (*AzureOpenAIClient, error) {
	if cfg.Endpoint == "" || cfg.APIKey == "" || cfg.Deployment == "" {
		return nil, errors.New("azure openai requires endpoint, api key and deployment")
	}

	clientConfig := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		clientConfig.APIVersion = cfg.APIVersion
	}
	deployment := cfg.Deployment
	clientConfig.AzureModelMapperFunc = func(string) string {
		return deployment
	}

	return &AzureOpenAIClient{
		Client:     openai.NewClientWithConfig(clientConfig),
		Deployment: deployment,
		log:        log.WithField("service", "azure-openai"),
	}, nil
}

func (c *AzureOpenAIClient) Name() string {
	return "azure-openai"
}

func (c *AzureOpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.Deployment,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	c.log.WithFields(logrus.Fields{
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	}).Debug("completion received")
	return resp.Choices[0].Message.Content, nil
}
