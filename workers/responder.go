package workers

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/voice-companion/llm"
	"github.com/mrsingh-rishi/voice-companion/model"
)

const (
	MaxReplyTokens   = 100
	ReplyTemperature = float32(0.7)
	FallbackReply    = "I couldn't understand that. Try again."
)

// Responder asks the completion backend for one short reply per turn.
// No conversation history is kept.
type Responder struct {
	completer llm.Completer
	log       *logrus.Entry
}

func NewResponder(completer llm.Completer, log *logrus.Entry) (*Responder, error) {
	if completer == nil {
		return nil, fmt.Errorf("completer is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Responder{
		completer: completer,
		log:       log.WithField("llm", completer.Name()),
	}, nil
}

func (r *Responder) Generate(ctx context.Context, userText, systemPrompt string) model.ReplyText {
	completion, err := r.completer.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: userText},
		},
		MaxTokens:   MaxReplyTokens,
		Temperature: ReplyTemperature,
	})
	if err != nil {
		r.log.WithError(err).Error("Error generating response")
		return FallbackReply
	}
	return model.ReplyText(strings.TrimSpace(completion))
}
