package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Provider names accepted by STT_PROVIDER, TTS_PROVIDER and LLM_PROVIDER.
const (
	ProviderAzure      = "azure"
	ProviderGoogle     = "google"
	ProviderDeepgram   = "deepgram"
	ProviderElevenLabs = "elevenlabs"
	ProviderGemini     = "gemini"
)

const (
	DefaultAPIVersion      = "2024-02-01"
	DefaultLanguage        = "en-US"
	DefaultVoice           = "en-US-AriaNeural"
	DefaultDeepgramModel   = "nova-2"
	DefaultElevenLabsVoice = "JBFqnCBsd6RMkjVDRZzb"
	DefaultElevenLabsModel = "eleven_multilingual_v2"
	DefaultGeminiModel     = "gemini-2.0-flash"
	DefaultLogLevel        = "info"
)

// OpenAIConfig holds the Azure OpenAI completion credentials.
type OpenAIConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
}

// SpeechConfig holds the Azure Speech credentials shared by recognition and synthesis.
type SpeechConfig struct {
	Key      string
	Region   string
	Language string
	Voice    string
}

// ProviderConfig selects the implementation behind each pipeline stage.
type ProviderConfig struct {
	STT string
	TTS string
	LLM string
}

type DeepgramConfig struct {
	APIKey string
	Model  string
}

type GoogleConfig struct {
	// CredentialsFile is optional; Application Default Credentials are used when empty.
	CredentialsFile string
}

type ElevenLabsConfig struct {
	APIKey  string
	VoiceID string
	ModelID string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// Config is read once at startup and never mutated afterwards. Components
// receive it (or the part they need) through their constructors.
type Config struct {
	OpenAI     OpenAIConfig
	Speech     SpeechConfig
	Providers  ProviderConfig
	Deepgram   DeepgramConfig
	Google     GoogleConfig
	ElevenLabs ElevenLabsConfig
	Gemini     GeminiConfig

	PersonaFile string
	LogLevel    string
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads a .env file from the working directory if one exists.
// It reports false when there is none.
func LoadDotEnv() (bool, error) {
	err := godotenv.Load()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("could not parse .env file: %w", err)
}

// FromEnvironment builds the configuration from the process environment.
func FromEnvironment() (*Config, error) {
	return Load(os.LookupEnv)
}

// Load builds and validates a Config using lookup for every variable.
func Load(lookup LookupFunc) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := &Config{
		OpenAI: OpenAIConfig{
			Endpoint:   get("AZURE_OPENAI_ENDPOINT", ""),
			APIKey:     get("AZURE_OPENAI_KEY", ""),
			Deployment: get("AZURE_OPENAI_DEPLOYMENT_NAME", ""),
			APIVersion: get("AZURE_OPENAI_API_VERSION", DefaultAPIVersion),
		},
		Speech: SpeechConfig{
			Key:      get("AZURE_SPEECH_KEY", ""),
			Region:   get("AZURE_SERVICE_REGION", ""),
			Language: get("SPEECH_LANGUAGE", DefaultLanguage),
			Voice:    get("SPEECH_VOICE", DefaultVoice),
		},
		Providers: ProviderConfig{
			STT: strings.ToLower(get("STT_PROVIDER", ProviderAzure)),
			TTS: strings.ToLower(get("TTS_PROVIDER", ProviderAzure)),
			LLM: strings.ToLower(get("LLM_PROVIDER", ProviderAzure)),
		},
		Deepgram: DeepgramConfig{
			APIKey: get("DEEPGRAM_API_KEY", ""),
			Model:  get("DEEPGRAM_MODEL", DefaultDeepgramModel),
		},
		Google: GoogleConfig{
			CredentialsFile: get("GOOGLE_SPEECH_CREDENTIALS", ""),
		},
		ElevenLabs: ElevenLabsConfig{
			APIKey:  get("ELEVENLABS_API_KEY", ""),
			VoiceID: get("ELEVENLABS_VOICE_ID", DefaultElevenLabsVoice),
			ModelID: get("ELEVENLABS_MODEL_ID", DefaultElevenLabsModel),
		},
		Gemini: GeminiConfig{
			APIKey: get("GEMINI_API_KEY", ""),
			Model:  get("GEMINI_MODEL", DefaultGeminiModel),
		},
		PersonaFile: get("PERSONA_FILE", ""),
		LogLevel:    get("LOG_LEVEL", DefaultLogLevel),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing or invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	require := func(value, name string) {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s must be set", name))
		}
	}

	switch c.Providers.STT {
	case ProviderAzure:
		require(c.Speech.Key, "AZURE_SPEECH_KEY")
		require(c.Speech.Region, "AZURE_SERVICE_REGION")
	case ProviderDeepgram:
		require(c.Deepgram.APIKey, "DEEPGRAM_API_KEY")
	case ProviderGoogle:
	default:
		errs = append(errs, fmt.Errorf("unknown STT_PROVIDER %q", c.Providers.STT))
	}

	switch c.Providers.TTS {
	case ProviderAzure:
		// duplicates with the STT branch are dropped by dedupe
		require(c.Speech.Key, "AZURE_SPEECH_KEY")
		require(c.Speech.Region, "AZURE_SERVICE_REGION")
	case ProviderElevenLabs:
		require(c.ElevenLabs.APIKey, "ELEVENLABS_API_KEY")
	default:
		errs = append(errs, fmt.Errorf("unknown TTS_PROVIDER %q", c.Providers.TTS))
	}

	switch c.Providers.LLM {
	case ProviderAzure:
		require(c.OpenAI.Endpoint, "AZURE_OPENAI_ENDPOINT")
		require(c.OpenAI.APIKey, "AZURE_OPENAI_KEY")
		require(c.OpenAI.Deployment, "AZURE_OPENAI_DEPLOYMENT_NAME")
	case ProviderGemini:
		require(c.Gemini.APIKey, "GEMINI_API_KEY")
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.Providers.LLM))
	}

	return errors.Join(dedupe(errs)...)
}

func dedupe(errs []error) []error {
	seen := make(map[string]bool, len(errs))
	out := errs[:0]
	for _, err := range errs {
		if seen[err.Error()] {
			continue
		}
		seen[err.Error()] = true
		out = append(out, err)
	}
	return out
}
