package question

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// RemoteCatalog implements Catalog against a question-bank HTTP service.
type RemoteCatalog struct {
	client *resty.Client
}

// RemoteConfig configures the remote question bank client.
type RemoteConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewRemoteCatalog creates a catalog backed by the question-bank service.
func NewRemoteCatalog(cfg RemoteConfig) *RemoteCatalog {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("x-api-key", cfg.APIKey)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &RemoteCatalog{client: client}
}

func (c *RemoteCatalog) get(ctx context.Context, url string, out any, pathParams map[string]string) error {
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParams(pathParams).
		Get(url)
	if err != nil {
		return fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode() != http.StatusOK {
		return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	if err := json.Unmarshal(res.Body(), out); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	return nil
}

// Get returns the question with the given id.
func (c *RemoteCatalog) Get(ctx context.Context, id string) (*Question, error) {
	var q Question
	if err := c.get(ctx, "/v1/questions/{id}", &q, map[string]string{"id": id}); err != nil {
		return nil, fmt.Errorf("fetch question %s: %w", id, err)
	}
	return &q, nil
}

// List returns matching question ids for a course.
func (c *RemoteCatalog) List(ctx context.Context, courseID string, filter Filter) ([]string, error) {
	req := c.client.R().SetContext(ctx).SetPathParam("courseID", courseID)
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		req.SetQueryParamsFromValues(url.Values{"type": types})
	}
	if filter.DifficultyMin > 0 {
		req.SetQueryParam("difficulty_min", fmt.Sprintf("%d", filter.DifficultyMin))
	}
	if filter.DifficultyMax > 0 {
		req.SetQueryParam("difficulty_max", fmt.Sprintf("%d", filter.DifficultyMax))
	}

	res, err := req.Get("/v1/courses/{courseID}/questions")
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}

	var payload struct {
		QuestionIDs []string `json:"question_ids"`
	}
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return payload.QuestionIDs, nil
}

// GetFixedSet returns the question ids of a named pre-built exam set.
func (c *RemoteCatalog) GetFixedSet(ctx context.Context, courseID string, name string) ([]string, error) {
	var payload struct {
		QuestionIDs []string `json:"question_ids"`
	}
	err := c.get(ctx, "/v1/courses/{courseID}/exam-sets/{name}", &payload,
		map[string]string{"courseID": courseID, "name": name})
	if err != nil {
		return nil, fmt.Errorf("fetch exam set %s: %w", name, err)
	}
	if len(payload.QuestionIDs) == 0 {
		return nil, fmt.Errorf("exam set %s for course %s: %w", name, courseID, ErrNotFound)
	}
	return payload.QuestionIDs, nil
}
