package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate API config
	if c.API.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Message: "Knowledge Table base URL is required",
		})
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Message: "invalid Knowledge Table base URL",
		})
	}

	if c.API.Timeout < 1 {
		errors = append(errors, ValidationError{
			Field:   "api.timeout",
			Message: "timeout must be positive",
		})
	}

	if c.API.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "api.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	// Validate Output config
	if c.Output.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "output.path",
			Message: "output path is required",
		})
	}

	// Validate Database config
	if c.Database.URL != "" {
		if u, err := url.Parse(c.Database.URL); err != nil || u.Scheme == "" {
			errors = append(errors, ValidationError{
				Field:   "database.url",
				Message: "invalid database URL",
			})
		}
	}

	// Validate LLM config
	if c.LLM.MaxTokens < 1 || c.LLM.MaxTokens > 4096 {
		errors = append(errors, ValidationError{
			Field:   "llm.max_tokens",
			Message: "max_tokens must be between 1 and 4096",
		})
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "llm.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	return errors
}
