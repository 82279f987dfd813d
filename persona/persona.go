package persona

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const defaultPrompt = "You are an imaginary friend for a 3-year-old that has the main purpose of teaching them a language. " +
	"You talk about ocean animals and dinosaurs. Using very short and simple sentences, include a Spanish word in each answer. " +
	"Ask simple questions to keep the conversation going. Limit your answers to 1-2 short sentences."

// Persona is the fixed system instruction given to the completion service on every turn.
type Persona struct {
	Name   string `yaml:"name"`
	Prompt string `yaml:"prompt"`
}

// Default returns the built-in language companion.
func Default() Persona {
	return Persona{Name: "companion", Prompt: defaultPrompt}
}

// Load reads a persona from a YAML file. An empty path returns Default.
func Load(path string) (Persona, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Persona{}, errors.Wrap(err, "read persona file")
	}
	return Parse(data)
}

// Parse decodes a YAML persona document.
func Parse(data []byte) (Persona, error) {
	var p Persona
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Persona{}, errors.Wrap(err, "parse persona")
	}

	p.Prompt = strings.TrimSpace(p.Prompt)
	if p.Prompt == "" {
		return Persona{}, errors.New("persona prompt is empty")
	}
	if p.Name == "" {
		p.Name = "custom"
	}
	return p, nil
}
