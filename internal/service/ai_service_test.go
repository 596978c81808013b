package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"collabhub-be/internal/dto"
	"collabhub-be/internal/repository/memory"
	"collabhub-be/internal/testutil"
	"collabhub-be/pkg/llm"
	"collabhub-be/pkg/mlclient"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	reply   string
	err     error
	history []llm.Message
}

func (s *stubLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	s.history = history
	return s.reply, s.err
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	s.history = []llm.Message{{Role: llm.RoleUser, Content: prompt}}
	return s.reply, s.err
}

type stubML struct {
	plan   *mlclient.ProjectPlan
	resume *mlclient.ResumeFields
	err    error
}

func (s *stubML) PlanProject(context.Context, string) (*mlclient.ProjectPlan, error) {
	return s.plan, s.err
}

func (s *stubML) ParseResume(context.Context, string) (*mlclient.ResumeFields, error) {
	return s.resume, s.err
}

func TestAIService_Roadmap(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	t.Run("parses a fenced json answer", func(t *testing.T) {
		provider := &stubLLM{reply: "```json\n{\"title\":\"Mastering Go\",\"steps\":[{\"topic\":\"Syntax\",\"description\":\"Types and funcs\"}]}\n```"}
		svc := NewAIService(e.factory, provider, nil, nil, nil, e.log)

		roadmap, err := svc.Roadmap(ctx, "Go")
		require.NoError(t, err)
		assert.Equal(t, "Mastering Go", roadmap.Title)
		assert.False(t, roadmap.Offline)
		require.Len(t, roadmap.Steps, 1)
		assert.Contains(t, provider.history[0].Content, "learn Go")
	})

	t.Run("provider failure gives the offline roadmap", func(t *testing.T) {
		svc := NewAIService(e.factory, &stubLLM{err: errors.New("quota exceeded")}, nil, nil, nil, e.log)

		roadmap, err := svc.Roadmap(ctx, "Rust")
		require.NoError(t, err)
		assert.True(t, roadmap.Offline)
		assert.Equal(t, "Roadmap for Rust (Offline Mode)", roadmap.Title)
		assert.Len(t, roadmap.Steps, 4)
	})

	t.Run("unparseable answer gives the offline roadmap", func(t *testing.T) {
		svc := NewAIService(e.factory, &stubLLM{reply: "sure! here is a roadmap"}, nil, nil, nil, e.log)

		roadmap, err := svc.Roadmap(ctx, "SQL")
		require.NoError(t, err)
		assert.True(t, roadmap.Offline)
	})
}

func TestAIService_Chat(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	provider := &stubLLM{reply: "  Goroutines are cheap threads.  "}
	svc := NewAIService(e.factory, provider, nil, nil, nil, e.log)

	res, err := svc.Chat(ctx, &dto.ChatRequest{Message: "What is a goroutine?", Context: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "Goroutines are cheap threads.", res.Reply)
	require.Len(t, provider.history, 2)
	assert.Equal(t, llm.RoleSystem, provider.history[0].Role)
	assert.Contains(t, provider.history[0].Content, "learn Go")

	failing := NewAIService(e.factory, &stubLLM{err: errors.New("boom")}, nil, nil, nil, e.log)
	res, err = failing.Chat(ctx, &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.True(t, res.Offline)
	assert.Equal(t, chatFallbackReply, res.Reply)
}

func TestAIService_ParseResume(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	cache := memory.NewMatchCache(time.Minute)
	alice := testutil.CreateUser(t, e.db, "alice", []string{"Go"}, []string{"Rust"})
	cache.Save(alice.Id, "q", []uuid.UUID{})

	ml := &stubML{resume: &mlclient.ResumeFields{FullName: "Alice A", Skills: []string{"go", "Docker", " SQL "}}}
	svc := NewAIService(e.factory, nil, ml, cache, nil, e.log)

	res, err := svc.ParseResume(ctx, alice.Id, "Alice A. Go developer with Docker and SQL experience.")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "Docker", "SQL"}, res.Parsed)
	assert.Equal(t, []string{"Go", "Docker", "SQL"}, res.SkillsKnown)

	stored := testutil.ReloadUser(t, e.db, alice.Id)
	assert.Equal(t, []string{"Go", "Docker", "SQL"}, stored.SkillsKnown)
	assert.Equal(t, []string{"Rust"}, stored.SkillsWanted)

	_, found := cache.Get(alice.Id, "q")
	assert.False(t, found)

	t.Run("ml outage", func(t *testing.T) {
		down := NewAIService(e.factory, nil, &stubML{err: mlclient.ErrUnavailable}, nil, nil, e.log)
		_, err := down.ParseResume(ctx, alice.Id, "some resume text that is long enough")
		assert.True(t, errors.Is(err, mlclient.ErrUnavailable))
	})
}

func TestAIService_Plan(t *testing.T) {
	e := newEnv(t)
	ml := &stubML{plan: &mlclient.ProjectPlan{
		DetectedCategory: "web",
		ProjectTitle:     "Todo API",
		StepByStepGuide:  []string{"Design", "Build"},
	}}
	svc := NewAIService(e.factory, nil, ml, nil, nil, e.log)

	plan, err := svc.Plan(context.Background(), "build a todo api")
	require.NoError(t, err)
	assert.Equal(t, "Todo API", plan.ProjectTitle)
	assert.Equal(t, []string{}, plan.ToolsRequired)

	_, err = NewAIService(e.factory, nil, nil, nil, nil, e.log).Plan(context.Background(), "anything")
	assert.True(t, errors.Is(err, mlclient.ErrUnavailable))
}
