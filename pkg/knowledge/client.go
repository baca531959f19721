package knowledge

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

type ClientConfig struct {
	BaseURL    string
	APIVersion string
	RateLimit  float64 // requests per second
	Timeout    time.Duration
	Author     string // metadata sent with uploads
	Tag        string
}

// Client talks to a Knowledge Table service. All document parsing and cell
// inference happens on the server side; the client only moves data.
type Client struct {
	config  ClientConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewWithConfig(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8000"
	}
	if config.APIVersion == "" {
		config.APIVersion = "v1"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 2 // 2 requests per second by default
	}
	if config.Author == "" {
		config.Author = "Automated Upload"
	}
	if config.Tag == "" {
		config.Tag = "Company Analysis"
	}

	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	parsed, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %s", config.BaseURL)
	}

	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}, nil
}

func New(baseURL string) *Client {
	c, _ := NewWithConfig(ClientConfig{
		BaseURL: baseURL,
	})
	return c
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/api/%s%s", c.config.BaseURL, c.config.APIVersion, path)
}

// do applies rate limiting before handing the request to the HTTP client.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return c.client.Do(req)
}
