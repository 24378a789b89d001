package analyze

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/boolex/internal"
)

const DefaultConfigPath = ".boolex.yaml"

// Config is the content of a .boolex.yaml file.
type Config struct {
	Name string `yaml:"name"`
	// Steps lists every sub-expression as a truth table column.
	Steps bool `yaml:"steps"`
	// Verify proves each minimized form equivalent to its source.
	Verify     bool     `yaml:"verify"`
	Extensions []string `yaml:"extensions"`
	// Ignore names checks to disable: count, minimize or verify.
	Ignore []string `yaml:"ignore,omitempty"`
	// Exclude holds glob patterns of file or directory names to skip.
	Exclude []string `yaml:"exclude,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Name:       "boolex",
		Verify:     true,
		Extensions: append([]string(nil), internal.DefaultExtensions...),
	}
}

// LoadConfig reads the configuration at path. Fields absent from the file
// keep their default. A missing file yields the default configuration.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if len(config.Extensions) == 0 {
		config.Extensions = append([]string(nil), internal.DefaultExtensions...)
	}
	return config, nil
}

// WriteConfig stores config at path as YAML.
func WriteConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}
