// Package mlclient is the typed HTTP client for the Python ML service
// (semantic matching, project planning, resume parsing).
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/pkg/matching"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrUnavailable wraps every transport or status failure of the ML service.
var ErrUnavailable = apperror.Unavailable("ml service unavailable")

type Client struct {
	BaseURL  string
	HTTP     *http.Client
	validate *validator.Validate
}

var _ matching.RelevanceOracle = &Client{}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: timeout},
		validate: validator.New(),
	}
}

type Candidate struct {
	Id          string   `json:"id" validate:"required,uuid"`
	FullName    string   `json:"fullName"`
	Bio         string   `json:"bio"`
	SkillsKnown []string `json:"skillsKnown"`
}

type MatchRequest struct {
	Query      string      `json:"query" validate:"required,max=500"`
	Candidates []Candidate `json:"candidates" validate:"dive"`
}

type MatchResult struct {
	Id    string  `json:"id" validate:"required,uuid"`
	Score float64 `json:"matchScore" validate:"gte=0"`
}

type MatchResponse struct {
	Matches []MatchResult `json:"matches" validate:"dive"`
}

type PlanRequest struct {
	Task string `json:"task" validate:"required,max=2000"`
}

type ProjectPlan struct {
	DetectedCategory string   `json:"detectedCategory" validate:"required"`
	ProjectTitle     string   `json:"projectTitle" validate:"required"`
	Overview         string   `json:"overview"`
	StepByStepGuide  []string `json:"stepByStepGuide" validate:"required,min=1"`
	SkillsRequired   []string `json:"skillsRequired"`
	ToolsRequired    []string `json:"toolsRequired"`
}

type ResumeRequest struct {
	Text string `json:"text" validate:"required,min=20"`
}

type ResumeFields struct {
	FullName string   `json:"fullName"`
	Skills   []string `json:"skills"`
	Bio      string   `json:"bio"`
}

// Rank asks the service to order pool by relevance to query. The service may
// return fewer ids than it was given.
func (c *Client) Rank(ctx context.Context, query string, pool []matching.Profile) ([]uuid.UUID, error) {
	req := MatchRequest{Query: query, Candidates: make([]Candidate, 0, len(pool))}
	for _, p := range pool {
		req.Candidates = append(req.Candidates, Candidate{
			Id:          p.Id.String(),
			FullName:    p.FullName,
			Bio:         p.Bio,
			SkillsKnown: p.SkillsKnown,
		})
	}

	var res MatchResponse
	if err := c.post(ctx, "/match", &req, &res); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(res.Matches))
	for _, m := range res.Matches {
		ids = append(ids, uuid.MustParse(m.Id))
	}
	return ids, nil
}

func (c *Client) PlanProject(ctx context.Context, task string) (*ProjectPlan, error) {
	var res ProjectPlan
	if err := c.post(ctx, "/ai-plan", &PlanRequest{Task: task}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ParseResume(ctx context.Context, text string) (*ResumeFields, error) {
	var res ResumeFields
	if err := c.post(ctx, "/parse-resume-text", &ResumeRequest{Text: text}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// post validates req, sends it and decodes a validated res.
func (c *Client) post(ctx context.Context, path string, req, res interface{}) error {
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid %s request: %w", path, err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpRes, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpRes.Body.Close()

	resBody, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if httpRes.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned status %d: %s", ErrUnavailable, path, httpRes.StatusCode, string(resBody))
	}

	if err := json.Unmarshal(resBody, res); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", path, err)
	}
	if err := c.validate.Struct(res); err != nil {
		return fmt.Errorf("invalid %s response: %w", path, err)
	}
	return nil
}
