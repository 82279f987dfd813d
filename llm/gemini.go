package llm

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/mrsingh-rishi/voice-companion/config"
)

// GeminiClient answers through the Gemini API. System messages become the
// system instruction; the rest are sent as conversation contents.
type GeminiClient struct {
	client *genai.Client
	model  string
	log    *logrus.Entry
}

func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, log *logrus.Entry) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini requires an api key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create genai client")
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultGeminiModel
	}
	return &GeminiClient{client: client, model: model, log: log.WithField("service", "gemini")}, nil
}

func (c *GeminiClient) Name() string {
	return "gemini"
}

func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	system, contents := toGenaiContent(req.Messages)
	generateConfig := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       genai.Ptr(req.Temperature),
	}
	if req.MaxTokens > 0 {
		generateConfig.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, generateConfig)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate content")
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func toGenaiContent(messages []Message) (*genai.Content, []*genai.Content) {
	var system *genai.Content
	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, genai.NewPartFromText(m.Content))
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return system, contents
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
