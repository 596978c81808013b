package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"collabhub-be/pkg/llm"
	"collabhub-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_Chat(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"hi there"},"done":true}`))
	}))
	defer srv.Close()

	p := ollama.NewOllamaProvider(srv.URL+"/", "llama3", time.Second)
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "be brief"},
		{Role: "model", Content: "earlier"},
		{Role: llm.RoleUser, Content: "hello"},
	}, llm.WithMaxTokens(64))

	require.NoError(t, err)
	assert.Equal(t, "hi there", out)
	assert.Equal(t, "llama3", got["model"])
	assert.Equal(t, false, got["stream"])

	messages := got["messages"].([]interface{})
	assert.Equal(t, "assistant", messages[1].(map[string]interface{})["role"])
	assert.Equal(t, float64(64), got["options"].(map[string]interface{})["num_predict"])
}

func TestOllamaProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := ollama.NewOllamaProvider(srv.URL, "missing", time.Second).Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestOllamaProvider_JSONOutput(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"message":{"role":"assistant","content":"{\"title\":\"x\"}"}}`))
	}))
	defer srv.Close()

	out, err := ollama.NewOllamaProvider(srv.URL, "llama3", time.Second).
		Generate(context.Background(), "roadmap", llm.WithJSONOutput(), llm.WithModel("qwen2"))

	require.NoError(t, err)
	assert.Equal(t, `{"title":"x"}`, out)
	assert.Equal(t, "json", got["format"])
	assert.Equal(t, "qwen2", got["model"])
}

func TestOllamaProvider_ErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"model is loading"}`))
	}))
	defer srv.Close()

	_, err := ollama.NewOllamaProvider(srv.URL, "llama3", time.Second).Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is loading")
}
