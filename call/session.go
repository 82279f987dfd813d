// Package call drives the listen, respond, speak loop until interrupted.
package call

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/voice-companion/model"
	"github.com/mrsingh-rishi/voice-companion/persona"
)

type Listener interface {
	Capture(ctx context.Context) model.Transcript
}

type Responder interface {
	Generate(ctx context.Context, userText, systemPrompt string) model.ReplyText
}

type Speaker interface {
	Speak(ctx context.Context, text string)
}

type State int32

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

var ErrAlreadyRunning = errors.New("session is already running")

// Session owns one conversation with the user. Turns run strictly one after
// another on the calling goroutine.
type Session struct {
	listener  Listener
	responder Responder
	speaker   Speaker
	persona   persona.Persona
	state     atomic.Int32
	log       *logrus.Entry
}

func NewSession(listener Listener, responder Responder, speaker Speaker, p persona.Persona, log *logrus.Entry) (*Session, error) {
	if listener == nil || responder == nil || speaker == nil {
		return nil, fmt.Errorf("listener, responder and speaker are required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Session{
		listener:  listener,
		responder: responder,
		speaker:   speaker,
		persona:   p,
		log:       log.WithField("persona", p.Name),
	}, nil
}

func (s *Session) State() State {
	return State(s.state.Load())
}

// Run loops until ctx is canceled, then returns nil. Nothing is called on
// the components once the cancellation has been observed.
func (s *Session) Run(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(Stopped), int32(Running)) {
		return ErrAlreadyRunning
	}
	s.log.Info("Starting. Press Ctrl+C to exit.")

	for ctx.Err() == nil {
		s.turn(ctx)
	}

	s.state.Store(int32(Stopped))
	s.log.Info("Keyboard interrupt received. Exiting the program...")
	s.log.Info("Goodbye.")
	return nil
}

func (s *Session) turn(ctx context.Context) {
	log := s.log.WithField("turn", uuid.NewString())

	transcript := s.listener.Capture(ctx)
	if ctx.Err() != nil {
		return
	}
	if !transcript.OK() {
		log.WithField("outcome", transcript.Outcome.String()).Info("No speech detected. Try again.")
		return
	}

	reply := s.responder.Generate(ctx, transcript.Text, s.persona.Prompt)
	if ctx.Err() != nil {
		return
	}
	log.Infof("Assistant response: %s", reply)

	s.speaker.Speak(ctx, string(reply))
}
