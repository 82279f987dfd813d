package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/voice-companion/audio"
	"github.com/mrsingh-rishi/voice-companion/azure"
	"github.com/mrsingh-rishi/voice-companion/call"
	"github.com/mrsingh-rishi/voice-companion/config"
	"github.com/mrsingh-rishi/voice-companion/input"
	"github.com/mrsingh-rishi/voice-companion/llm"
	"github.com/mrsingh-rishi/voice-companion/logging"
	"github.com/mrsingh-rishi/voice-companion/output"
	"github.com/mrsingh-rishi/voice-companion/persona"
	"github.com/mrsingh-rishi/voice-companion/stt"
	"github.com/mrsingh-rishi/voice-companion/tts"
	"github.com/mrsingh-rishi/voice-companion/workers"
)

func main() {
	startup := logging.NewLogger(config.DefaultLogLevel, os.Stderr)

	// Load .env if present
	found, err := config.LoadDotEnv()
	if err != nil {
		startup.WithError(err).Fatal("could not load .env file")
	}

	cfg := loadConfig(startup, os.LookupEnv)

	logger := logging.NewLogger(cfg.LogLevel, os.Stderr)
	if !found {
		logger.Debug("No .env file found, using environment variables")
	}

	p, err := persona.Load(cfg.PersonaFile)
	if err != nil {
		logger.WithError(err).Fatal("could not load persona")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, p, logger); err != nil {
		logger.WithError(err).Fatal("voice companion failed")
	}
}

// loadConfig reports a bad configuration through the startup logger, which
// exits the process.
func loadConfig(startup *logrus.Logger, lookup config.LookupFunc) *config.Config {
	cfg, err := config.Load(lookup)
	if err != nil {
		startup.WithError(err).Fatal("invalid configuration")
		return nil
	}
	return cfg
}

func run(ctx context.Context, cfg *config.Config, p persona.Persona, logger *logrus.Logger) error {
	if needsPortAudio(cfg.Providers) {
		if err := portaudio.Initialize(); err != nil {
			return fmt.Errorf("could not initialize audio devices: %w", err)
		}
		defer portaudio.Terminate()
	}

	recognizer, closeRecognizer, err := newRecognizer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRecognizer()

	completer, err := newCompleter(ctx, cfg, logger)
	if err != nil {
		return err
	}

	synthesizer, err := newSynthesizer(cfg, logger)
	if err != nil {
		return err
	}

	listener, err := workers.NewListener(recognizer, logging.Component(logger, "listener"))
	if err != nil {
		return err
	}
	responder, err := workers.NewResponder(completer, logging.Component(logger, "responder"))
	if err != nil {
		return err
	}
	speaker, err := workers.NewSpeaker(synthesizer, logging.Component(logger, "speaker"))
	if err != nil {
		return err
	}

	session, err := call.NewSession(listener, responder, speaker, p, logging.Component(logger, "session"))
	if err != nil {
		return err
	}
	return session.Run(ctx)
}

func needsPortAudio(providers config.ProviderConfig) bool {
	return providers.STT != config.ProviderAzure || providers.TTS != config.ProviderAzure
}

func newRecognizer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (stt.Recognizer, func(), error) {
	entry := logging.Component(logger, "stt")
	noop := func() {}

	switch cfg.Providers.STT {
	case config.ProviderAzure:
		r, err := azure.NewRecognizer(cfg.Speech, entry)
		return r, noop, err
	case config.ProviderDeepgram:
		mic := input.NewMicrophone(audio.DefaultEndpointParams(), logging.Component(logger, "microphone"))
		return stt.NewDeepgramClient(cfg.Deepgram.APIKey, cfg.Deepgram.Model, cfg.Speech.Language, mic, entry), noop, nil
	case config.ProviderGoogle:
		mic := input.NewMicrophone(audio.DefaultEndpointParams(), logging.Component(logger, "microphone"))
		g, err := stt.NewGoogleClient(ctx, cfg.Google.CredentialsFile, cfg.Speech.Language, mic, entry)
		if err != nil {
			return nil, noop, err
		}
		return g, func() {
			if err := g.Close(); err != nil {
				entry.WithError(err).Warn("could not close google speech client")
			}
		}, nil
	default:
		return nil, noop, fmt.Errorf("unknown STT provider %q", cfg.Providers.STT)
	}
}

func newCompleter(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (llm.Completer, error) {
	entry := logging.Component(logger, "llm")

	switch cfg.Providers.LLM {
	case config.ProviderAzure:
		return llm.NewAzureOpenAIClient(cfg.OpenAI, entry)
	case config.ProviderGemini:
		return llm.NewGeminiClient(ctx, cfg.Gemini, entry)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Providers.LLM)
	}
}

func newSynthesizer(cfg *config.Config, logger *logrus.Logger) (tts.Synthesizer, error) {
	entry := logging.Component(logger, "tts")

	switch cfg.Providers.TTS {
	case config.ProviderAzure:
		return azure.NewSynthesizer(cfg.Speech, entry)
	case config.ProviderElevenLabs:
		sink := output.NewSpeaker(audio.SampleRate, logging.Component(logger, "speaker-device"))
		return tts.NewElevenLabsClient(cfg.ElevenLabs.APIKey, cfg.ElevenLabs.VoiceID, cfg.ElevenLabs.ModelID, sink, entry)
	default:
		return nil, fmt.Errorf("unknown TTS provider %q", cfg.Providers.TTS)
	}
}
