package mlclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"collabhub-be/pkg/matching"
	"collabhub-be/pkg/mlclient"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Rank(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/match", r.URL.Path)

		var req mlclient.MatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "someone to teach me react", req.Query)
		require.Len(t, req.Candidates, 2)

		json.NewEncoder(w).Encode(mlclient.MatchResponse{Matches: []mlclient.MatchResult{
			{Id: b.String(), Score: 81.5},
			{Id: a.String(), Score: 40},
		}})
	}))
	defer srv.Close()

	client := mlclient.New(srv.URL, time.Second)
	ids, err := client.Rank(context.Background(), "someone to teach me react", []matching.Profile{
		{Id: a, FullName: "Ada"},
		{Id: b, FullName: "Bob", SkillsKnown: []string{"React"}},
	})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b, a}, ids)
}

func TestClient_RejectsMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches":[{"id":"not-a-uuid","matchScore":10}]}`))
	}))
	defer srv.Close()

	_, err := mlclient.New(srv.URL, time.Second).Rank(context.Background(), "react", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid /match response")
}

func TestClient_RejectsInvalidRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := mlclient.New(srv.URL, time.Second).ParseResume(context.Background(), "too short")
	require.Error(t, err)
	assert.False(t, called)
}

func TestClient_PlanProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ai-plan", r.URL.Path)
		w.Write([]byte(`{
			"detectedCategory": "web",
			"projectTitle": "Portfolio Site",
			"overview": "A personal site",
			"stepByStepGuide": ["Scaffold", "Deploy"],
			"skillsRequired": ["HTML"],
			"toolsRequired": ["Git"]
		}`))
	}))
	defer srv.Close()

	plan, err := mlclient.New(srv.URL, time.Second).PlanProject(context.Background(), "build a portfolio website")
	require.NoError(t, err)
	assert.Equal(t, "Portfolio Site", plan.ProjectTitle)
	assert.Equal(t, []string{"Scaffold", "Deploy"}, plan.StepByStepGuide)
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := mlclient.New(srv.URL, time.Second).ParseResume(context.Background(), "Jane Doe is a Python and React developer.")
	assert.True(t, errors.Is(err, mlclient.ErrUnavailable))
}
