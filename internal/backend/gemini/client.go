// Package gemini generates sub-task suggestions with the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	genai "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"taskminder/internal/config"
	"taskminder/internal/task"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.5-flash"

	// APITimeout bounds a single generation request.
	APITimeout = 60 * time.Second
)

// Scopes are the OAuth scopes requested for Gemini access.
var Scopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/generative-language.retriever",
}

var (
	// ErrNoCredentials means neither an API key, a stored token nor
	// application default credentials are available.
	ErrNoCredentials = errors.New("no Gemini credentials (set GEMINI_API_KEY or run: taskminder login)")

	// ErrMalformedResponse means the model did not return a usable list.
	ErrMalformedResponse = errors.New("malformed response")
)

// Client implements service.Generator using the Gemini API.
type Client struct {
	svc     *genai.Service
	model   string
	timeout time.Duration
}

// New creates a client from the AI settings. Credentials are taken from the
// configured API key variable, then the token saved by login, then
// application default credentials.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	ai := cfg.Settings.AI

	auth, err := credentials(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts := []option.ClientOption{auth}
	if ai.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(ai.Endpoint))
	}

	svc, err := genai.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini service: %w", err)
	}
	return &Client{svc: svc, model: ai.Model, timeout: ai.Timeout}, nil
}

// NewWithHTTPClient creates a client that talks to endpoint through
// httpClient (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint, model string) (*Client, error) {
	svc, err := genai.NewService(ctx,
		option.WithHTTPClient(httpClient),
		option.WithEndpoint(endpoint),
	)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, model: model}, nil
}

func credentials(ctx context.Context, cfg *config.Config) (option.ClientOption, error) {
	if key := cfg.Settings.AI.APIKey(); key != "" {
		return option.WithAPIKey(key), nil
	}

	if cfg.HasOAuthClient() && cfg.HasToken() {
		ts, err := storedTokenSource(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return option.WithHTTPClient(oauth2.NewClient(ctx, ts)), nil
	}

	if creds, err := google.FindDefaultCredentials(ctx, Scopes...); err == nil {
		return option.WithTokenSource(creds.TokenSource), nil
	}
	return nil, ErrNoCredentials
}

// storedTokenSource returns an auto-refreshing source for the token saved
// by login.
func storedTokenSource(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return oauthConfig.TokenSource(ctx, &token), nil
}

// GenerateSubTasks asks the model to break goal into actionable sub-tasks.
func (c *Client) GenerateSubTasks(ctx context.Context, goal string) ([]task.Suggestion, error) {
	timeout := c.timeout
	if timeout <= 0 {
		timeout = APITimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := &genai.GenerateContentRequest{
		Contents: []*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: Prompt(goal)}},
		}},
		GenerationConfig: &genai.GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   suggestionSchema(),
		},
	}

	resp, err := c.svc.Models.GenerateContent(c.modelName(), req).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}
	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrMalformedResponse)
	}
	return ParseSuggestions([]byte(text))
}

func (c *Client) modelName() string {
	model := c.model
	if model == "" {
		model = DefaultModel
	}
	if strings.HasPrefix(model, "models/") {
		return model
	}
	return "models/" + model
}

// Prompt is the instruction sent for goal.
func Prompt(goal string) string {
	return fmt.Sprintf("Based on the goal \"%s\", generate a list of actionable sub-tasks.", goal)
}

func suggestionSchema() *genai.Schema {
	return &genai.Schema{
		Type: "ARRAY",
		Items: &genai.Schema{
			Type: "OBJECT",
			Properties: map[string]genai.Schema{
				"title": {
					Type:        "STRING",
					Description: "A concise, actionable title for the sub-task.",
				},
				"priority": {
					Type:        "STRING",
					Description: "The priority of the task.",
					Enum:        []string{string(task.PriorityLow), string(task.PriorityMedium), string(task.PriorityHigh)},
				},
			},
			Required: []string{"title", "priority"},
		},
	}
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return fmt.Errorf("credentials rejected (check your API key or run: taskminder login)")
		case apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Message, "API key"):
			return fmt.Errorf("API key not valid (check your API key)")
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("rate limited, try again later")
		}
	}
	return err
}
