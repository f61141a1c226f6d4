package fixtures

import (
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var envPlaceholder = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)

// Loader handles loading and validation of a sandbox fixture file
type Loader struct {
	filePath string
	validate *validator.Validate
}

// NewLoader creates a new fixture loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
		validate: validator.New(),
	}
}

// Load reads, expands and validates the fixture file
func (l *Loader) Load() (*File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	data = expandPlaceholders(data)

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixture yaml: %w", err)
	}

	if err := l.validate.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid fixture file %s: %w", l.filePath, err)
	}

	return &file, nil
}

// expandPlaceholders substitutes ${VAR} with the environment value, so that
// tokens can be kept out of committed fixture files.
// Example: token: ${KALERON_DEMO_TOKEN}
func expandPlaceholders(data []byte) []byte {
	return envPlaceholder.ReplaceAllFunc(data, func(m []byte) []byte {
		name := envPlaceholder.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}
