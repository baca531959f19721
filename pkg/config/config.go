package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL   string  `yaml:"base_url"`
		Version   string  `yaml:"version"`
		Timeout   int     `yaml:"timeout"`
		RateLimit float64 `yaml:"rate_limit"`
	} `yaml:"api"`

	Upload struct {
		Author string `yaml:"author"`
		Tag    string `yaml:"tag"`
	} `yaml:"upload"`

	Output struct {
		Path string `yaml:"path"`
	} `yaml:"output"`

	Database struct {
		URL       string `yaml:"url"`
		TableName string `yaml:"table_name"`
	} `yaml:"database"`

	LLM struct {
		BaseURL     string  `yaml:"base_url"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"llm"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"knowtab.yaml",
			"knowtab.yml",
			filepath.Join(os.Getenv("HOME"), ".config/knowtab/config.yaml"),
			"/etc/knowtab/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	// Merge with environment variables
	mergeWithEnv(&config)

	// Apply defaults for unset values
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	applyDefaults(config)
	mergeWithEnv(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.API.BaseURL == "" {
		config.API.BaseURL = "http://localhost:8000"
	}
	if config.API.Version == "" {
		config.API.Version = "v1"
	}
	if config.API.Timeout == 0 {
		config.API.Timeout = 60
	}
	if config.API.RateLimit == 0 {
		config.API.RateLimit = 2.0
	}

	if config.Upload.Author == "" {
		config.Upload.Author = "Automated Upload"
	}
	if config.Upload.Tag == "" {
		config.Upload.Tag = "Company Analysis"
	}

	if config.Output.Path == "" {
		config.Output.Path = "company_classification_results.json"
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "classification_results"
	}

	if config.LLM.BaseURL == "" {
		config.LLM.BaseURL = "http://localhost:11434"
	}
	if config.LLM.Model == "" {
		config.LLM.Model = "mistral"
	}
	if config.LLM.MaxTokens == 0 {
		config.LLM.MaxTokens = 2000
	}
	if config.LLM.Temperature == 0 {
		config.LLM.Temperature = 0.7
	}
}

func mergeWithEnv(config *Config) {
	if apiURL := os.Getenv("KNOWTAB_API_URL"); apiURL != "" {
		config.API.BaseURL = apiURL
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
}
