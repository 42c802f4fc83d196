package enrich

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"github.com/talentio/profilehub/internal/prompts"
	"golang.org/x/time/rate"
)

// Config holds configuration for the enrichment client.
type Config struct {
	Provider     string
	Model        string
	APIKey       string
	BaseURL      string
	RateLimitRPS float64
}

// Client implements Enricher against an OpenAI-compatible chat completions
// endpoint. All requests pass through a shared rate limiter and circuit
// breaker so a struggling backend degrades builds instead of stalling them.
type Client struct {
	client   *resty.Client
	model    string
	endpoint string
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
}

// NewClient creates a new enrichment client.
// Parameters:
//   - cfg: backend configuration including model, API key, and rate limit.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *Config) *Client {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(60 * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 1)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "enrichment",
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		client:   client,
		model:    cfg.Model,
		endpoint: baseURL + "/chat/completions",
		limiter:  limiter,
		breaker:  breaker,
	}
}

// GetModel returns the model name being used.
// Parameters: none.
// Returns:
//   - string: model identifier.
func (c *Client) GetModel() string {
	return c.model
}

// OpenAI-compatible chat completion request/response structures.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // string, or []interface{} for user turns with images
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type imageContent struct {
	Type     string   `json:"type"`
	ImageURL imageURL `json:"image_url"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// complete sends one chat completion through the limiter and breaker.
func (c *Client) complete(ctx context.Context, op string, req chatRequest) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &CallError{Op: op, Transient: true, Err: err}
		}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		var resp chatResponse
		httpResp, err := c.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&resp).
			Post(c.endpoint)
		if err != nil {
			return "", &CallError{Op: op, Transient: true, Err: err}
		}

		if code := httpResp.StatusCode(); code < 200 || code >= 300 {
			msg := fmt.Errorf("status %d", code)
			if resp.Error != nil {
				msg = fmt.Errorf("%s", resp.Error.Message)
			}
			return "", &CallError{Op: op, Status: code, Transient: transientStatus(code), Err: msg}
		}
		if resp.Error != nil {
			return "", &CallError{Op: op, Err: fmt.Errorf("%s", resp.Error.Message)}
		}
		if len(resp.Choices) == 0 {
			return "", &CallError{Op: op, Err: fmt.Errorf("no choices in response")}
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", &CallError{Op: op, Transient: true, Err: err}
		}
		return "", err
	}
	return result.(string), nil
}

// ExtractSkills extracts professional skills from free-text fragments.
func (c *Client) ExtractSkills(ctx context.Context, fragments []string) ([]string, error) {
	text := strings.TrimSpace(strings.Join(fragments, "\n"))
	if text == "" {
		return nil, &CallError{Op: "extract_skills", Err: fmt.Errorf("no text to analyze")}
	}

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompts.SkillsSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(prompts.SkillsUserPrompt, text)},
		},
		MaxTokens: 300,
	}

	content, err := c.complete(ctx, "extract_skills", req)
	if err != nil {
		return nil, err
	}
	return parseStringList(content), nil
}

// GenerateBio writes a short professional bio.
func (c *Client) GenerateBio(ctx context.Context, bioReq BioRequest) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompts.BioSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(prompts.BioUserPrompt,
				bioReq.Name,
				bioReq.Profession,
				strings.Join(bioReq.Skills, ", "),
				strings.Join(bioReq.Experience, "; "),
			)},
		},
		MaxTokens: 200,
	}

	content, err := c.complete(ctx, "generate_bio", req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// AnalyzeImage tags an image reachable at a public URL.
func (c *Client) AnalyzeImage(ctx context.Context, imgURL string) ([]string, error) {
	return c.analyze(ctx, imgURL)
}

// AnalyzeImageData tags an uploaded image from raw bytes.
func (c *Client) AnalyzeImageData(ctx context.Context, data []byte, format string) ([]string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType(format), base64.StdEncoding.EncodeToString(data))
	return c.analyze(ctx, dataURL)
}

func (c *Client) analyze(ctx context.Context, imgURL string) ([]string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompts.ImageTagsSystemPrompt},
			{
				Role: "user",
				Content: []interface{}{
					textContent{Type: "text", Text: prompts.ImageTagsUserPrompt},
					imageContent{
						Type:     "image_url",
						ImageURL: imageURL{URL: imgURL, Detail: "auto"},
					},
				},
			},
		},
		MaxTokens: 150,
	}

	content, err := c.complete(ctx, "analyze_image", req)
	if err != nil {
		return nil, err
	}
	return parseStringList(content), nil
}

// parseStringList decodes a JSON array of strings, tolerating code fences
// and falling back to comma splitting for non-JSON answers.
func parseStringList(content string) []string {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var items []string
	if err := json.Unmarshal([]byte(s), &items); err == nil {
		return trimAll(items)
	}

	return trimAll(strings.Split(s, ","))
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.Trim(strings.TrimSpace(it), `"`); it != "" {
			out = append(out, it)
		}
	}
	return out
}

func mimeType(format string) string {
	switch format {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
