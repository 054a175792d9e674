// Package config handles configuration loading: an optional YAML file
// for the host command and log level, and environment variables for the
// AI endpoint settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./config.yaml, ~/.config/analytics-mcp/config.yaml,
// /etc/analytics-mcp/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"config.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "analytics-mcp", "config.yaml"))
	}

	paths = append(paths, "/etc/analytics-mcp/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns the path found, or an error if nothing was found.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds the file-based configuration.
type Config struct {
	Server   ServerConfig `yaml:"server"`
	LogLevel string       `yaml:"log_level"`
}

// ServerConfig locates the capability host binary the client and agent
// launch as a subprocess.
type ServerConfig struct {
	Path string `yaml:"path"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Path: "analytics-server"},
	}
}

// AI holds the chat-completion endpoint settings. They come from the
// environment only; the config file never carries credentials.
type AI struct {
	Endpoint       string `env:"AI_ENDPOINT,default=https://ai-project-x.services.ai.azure.com/openai/v1/"`
	ModelName      string `env:"AI_MODEL_NAME,default=DeepSeek-V3.1"`
	DeploymentName string `env:"AI_DEPLOYMENT_NAME,default=DeepSeek-V3.1"`
	APIKey         string `env:"AI_API_KEY,required"`
}

// ChatModel returns the name to send as the chat request's model field.
// On Azure-style gateways the deployment name is the routable one, so
// it wins when set; AI_MODEL_NAME covers endpoints without deployments.
func (ai *AI) ChatModel() string {
	if ai.DeploymentName != "" {
		return ai.DeploymentName
	}
	return ai.ModelName
}

// AIFromEnv decodes the AI settings from the environment. A missing
// AI_API_KEY is an error; everything else has defaults.
func AIFromEnv() (*AI, error) {
	var cfg AI
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode AI environment: %w", err)
	}
	return &cfg, nil
}
