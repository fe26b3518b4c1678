package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"reserve-assistant/models/apperr"
)

func TestBuildOpenStatusPrompt(t *testing.T) {
	prompt := BuildOpenStatusPrompt("鮨 しま", "17:00～23:00", "水曜", "2026/10/21 (水) 19:00")

	assert.Contains(t, prompt, "店舗: 鮨 しま")
	assert.Contains(t, prompt, "営業時間: 17:00～23:00")
	assert.Contains(t, prompt, "定休日: 水曜")
	assert.Contains(t, prompt, "希望日時: 2026/10/21 (水) 19:00")
	assert.Contains(t, prompt, "'TRUE'")
	assert.Contains(t, prompt, "'FALSE'")
}

func TestCleanReply(t *testing.T) {
	assert.Equal(t, "FALSE", cleanReply("  FALSE\n"))
	assert.Equal(t, "TRUE", cleanReply("```\nTRUE\n```"))
}

func TestTextGeneratorFunc(t *testing.T) {
	var g TextGenerator = TextGeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "echo:" + prompt, nil
	})
	reply, err := g.GenerateText(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo:hi", reply)
}

func newOpenAIServer(t *testing.T, status int, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
			return
		}
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:    "cmpl-1",
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{Index: 0, Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply}},
			},
		})
	}))
}

func TestOpenAITextGenerator_GenerateText(t *testing.T) {
	srv := newOpenAIServer(t, http.StatusOK, " FALSE ")
	defer srv.Close()

	g, err := NewOpenAITextGenerator("sk-test", "gpt-4o-mini", srv.URL+"/v1", 5*time.Second, nil, arbor.NewLogger())
	require.NoError(t, err)

	reply, err := g.GenerateText(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "FALSE", reply)
}

func TestOpenAITextGenerator_ServerErrorIsSourceError(t *testing.T) {
	srv := newOpenAIServer(t, http.StatusInternalServerError, "")
	defer srv.Close()

	g, err := NewOpenAITextGenerator("sk-test", "gpt-4o-mini", srv.URL+"/v1", 5*time.Second, nil, arbor.NewLogger())
	require.NoError(t, err)

	_, err = g.GenerateText(context.Background(), "prompt")
	assert.True(t, apperr.IsSourceUnavailable(err))
}

func TestNewGenerators_RequireKey(t *testing.T) {
	_, err := NewOpenAITextGenerator("", "gpt-4o-mini", "", time.Second, nil, arbor.NewLogger())
	assert.Error(t, err)

	_, err = NewAnthropicTextGenerator("", "claude-3-5-haiku-latest", "", time.Second, nil, arbor.NewLogger())
	assert.Error(t, err)

	_, err = NewGeminiTextGenerator(context.Background(), "", "gemini-2.0-flash", time.Second, nil, arbor.NewLogger())
	assert.Error(t, err)
}

func newAnthropicServer(t *testing.T, status int, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          "msg_1",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-3-5-haiku-latest",
			"content":     []map[string]string{{"type": "text", "text": reply}},
			"stop_reason": "end_turn",
			"usage":       map[string]int{"input_tokens": 10, "output_tokens": 1},
		})
	}))
}

func TestAnthropicTextGenerator_GenerateText(t *testing.T) {
	srv := newAnthropicServer(t, http.StatusOK, "FALSE\n")
	defer srv.Close()

	g, err := NewAnthropicTextGenerator("sk-ant-test", "claude-3-5-haiku-latest", srv.URL+"/", 5*time.Second, nil, arbor.NewLogger())
	require.NoError(t, err)

	reply, err := g.GenerateText(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "FALSE", reply)
}

func TestAnthropicTextGenerator_ErrorIsSourceError(t *testing.T) {
	srv := newAnthropicServer(t, http.StatusBadRequest, "")
	defer srv.Close()

	g, err := NewAnthropicTextGenerator("sk-ant-test", "claude-3-5-haiku-latest", srv.URL+"/", 5*time.Second, nil, arbor.NewLogger())
	require.NoError(t, err)

	_, err = g.GenerateText(context.Background(), "prompt")
	assert.True(t, apperr.IsSourceUnavailable(err))
}
