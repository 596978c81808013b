package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"collabhub-be/internal/dto"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/pkg/logger"
	"collabhub-be/internal/repository/memory"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/pkg/llm"
	"collabhub-be/pkg/metrics"
	"collabhub-be/pkg/mlclient"

	"github.com/google/uuid"
)

const chatFallbackReply = "I am having trouble reaching the AI tutor right now. But keep learning! You're doing great!"

// MLService is the part of the ML service used for content generation.
type MLService interface {
	PlanProject(ctx context.Context, task string) (*mlclient.ProjectPlan, error)
	ParseResume(ctx context.Context, text string) (*mlclient.ResumeFields, error)
}

type IAIService interface {
	Roadmap(ctx context.Context, skill string) (*dto.RoadmapResponse, error)
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	ParseResume(ctx context.Context, userId uuid.UUID, text string) (*dto.ResumeResponse, error)
	Plan(ctx context.Context, task string) (*dto.PlanResponse, error)
}

type aiService struct {
	uowFactory unitofwork.RepositoryFactory
	llm        llm.LLMProvider
	ml         MLService
	matchCache *memory.MatchCache
	metrics    *metrics.Manager
	logger     logger.ILogger
}

func NewAIService(uowFactory unitofwork.RepositoryFactory, provider llm.LLMProvider, ml MLService, matchCache *memory.MatchCache, m *metrics.Manager, log logger.ILogger) IAIService {
	return &aiService{
		uowFactory: uowFactory,
		llm:        provider,
		ml:         ml,
		matchCache: matchCache,
		metrics:    m,
		logger:     log,
	}
}

// Roadmap asks the LLM for a learning path. Any provider or parsing failure
// falls back to a generic offline roadmap.
func (s *aiService) Roadmap(ctx context.Context, skill string) (*dto.RoadmapResponse, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, apperror.InvalidArgument("skill is required")
	}

	roadmap, err := s.generateRoadmap(ctx, skill)
	if err != nil {
		s.logger.Warn("AI", "Roadmap generation failed, using offline roadmap", map[string]interface{}{
			"skill": skill,
			"error": err.Error(),
		})
		return offlineRoadmap(skill), nil
	}
	return roadmap, nil
}

func (s *aiService) generateRoadmap(ctx context.Context, skill string) (*dto.RoadmapResponse, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("no llm provider configured")
	}

	prompt := fmt.Sprintf(`Create a step-by-step learning roadmap for a beginner who wants to learn %s.
Return only a JSON object with this structure:
{"title": "Mastering %s", "steps": [{"topic": "Step name", "description": "What to learn"}]}`, skill, skill)

	started := time.Now()
	text, err := s.llm.Generate(ctx, prompt, llm.WithTemperature(0.4), llm.WithJSONOutput())
	s.metrics.ObserveExternalCall("llm_roadmap", started, err)
	if err != nil {
		return nil, err
	}

	var roadmap dto.RoadmapResponse
	if err := json.Unmarshal(llm.StripCodeFence(text), &roadmap); err != nil {
		return nil, fmt.Errorf("decode roadmap: %w", err)
	}
	if roadmap.Title == "" || len(roadmap.Steps) == 0 {
		return nil, fmt.Errorf("roadmap is empty")
	}
	return &roadmap, nil
}

func offlineRoadmap(skill string) *dto.RoadmapResponse {
	return &dto.RoadmapResponse{
		Title: fmt.Sprintf("Roadmap for %s (Offline Mode)", skill),
		Steps: []dto.RoadmapStep{
			{Topic: "Basics", Description: "Learn the core syntax and concepts."},
			{Topic: "Intermediate Projects", Description: "Build 3 small projects to practice."},
			{Topic: "Advanced Concepts", Description: "Deep dive into the internals and performance."},
			{Topic: "Final Project", Description: "Build a full-stack application."},
		},
		Offline: true,
	}
}

func (s *aiService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperror.InvalidArgument("message is required")
	}
	topic := strings.TrimSpace(req.Context)
	if topic == "" {
		topic = "general skills"
	}

	if s.llm == nil {
		return &dto.ChatResponse{Reply: chatFallbackReply, Offline: true}, nil
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: fmt.Sprintf("You are an expert tutor helping a student learn %s. Keep answers under three sentences and encouraging.", topic)},
		{Role: llm.RoleUser, Content: message},
	}

	started := time.Now()
	reply, err := s.llm.Chat(ctx, history)
	s.metrics.ObserveExternalCall("llm_chat", started, err)
	if err != nil || strings.TrimSpace(reply) == "" {
		fields := map[string]interface{}{"context": topic}
		if err != nil {
			fields["error"] = err.Error()
		}
		s.logger.Warn("AI", "Chat reply failed, using fallback", fields)
		return &dto.ChatResponse{Reply: chatFallbackReply, Offline: true}, nil
	}
	return &dto.ChatResponse{Reply: strings.TrimSpace(reply)}, nil
}

// ParseResume extracts skills from resume text and merges them into the
// user's known skills.
func (s *aiService) ParseResume(ctx context.Context, userId uuid.UUID, text string) (*dto.ResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if s.ml == nil {
		return nil, mlclient.ErrUnavailable
	}

	started := time.Now()
	fields, err := s.ml.ParseResume(ctx, text)
	s.metrics.ObserveExternalCall("ml_resume", started, err)
	if err != nil {
		return nil, err
	}

	parsed := entity.NormalizeSkills(fields.Skills)
	merged, err := uow.UserRepository().AddKnownSkills(ctx, user.Id, parsed)
	if err != nil {
		return nil, err
	}
	if s.matchCache != nil {
		s.matchCache.Invalidate(user.Id)
	}

	return &dto.ResumeResponse{
		FullName:    fields.FullName,
		Bio:         fields.Bio,
		Parsed:      parsed,
		SkillsKnown: merged,
	}, nil
}

func (s *aiService) Plan(ctx context.Context, task string) (*dto.PlanResponse, error) {
	if s.ml == nil {
		return nil, mlclient.ErrUnavailable
	}

	started := time.Now()
	plan, err := s.ml.PlanProject(ctx, strings.TrimSpace(task))
	s.metrics.ObserveExternalCall("ml_plan", started, err)
	if err != nil {
		return nil, err
	}

	return &dto.PlanResponse{
		DetectedCategory: plan.DetectedCategory,
		ProjectTitle:     plan.ProjectTitle,
		Overview:         plan.Overview,
		StepByStepGuide:  nonNil(plan.StepByStepGuide),
		SkillsRequired:   nonNil(plan.SkillsRequired),
		ToolsRequired:    nonNil(plan.ToolsRequired),
	}, nil
}
