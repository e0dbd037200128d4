package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital_diary/config"
	"digital_diary/models"
)

// newChatServer 起一个OpenAI兼容的假模型服务，按预置文本应答
func newChatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/json")
		body := map[string]any{
			"choices": []map[string]any{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
}

func newTestClient(baseURL string) *modelClient {
	cfg := &config.Config{}
	cfg.ModelServer.BaseURL = baseURL
	cfg.ModelServer.APIKey = "sk-test"
	cfg.ModelServer.Model = "qwen-plus"
	return newModelClient(cfg)
}

func TestEmotionExtractorNormalizesLabel(t *testing.T) {
	ts := newChatServer(t, `{"emotion":" JOY "}`)
	defer ts.Close()

	e := &emotionExtractor{client: newTestClient(ts.URL)}
	label, err := e.Extract(context.Background(), "今天很开心")
	require.NoError(t, err)
	assert.Equal(t, "joy", label)
}

func TestEmotionExtractorUnknownLabelDropped(t *testing.T) {
	ts := newChatServer(t, `{"emotion":"ecstatic"}`)
	defer ts.Close()

	e := &emotionExtractor{client: newTestClient(ts.URL)}
	label, err := e.Extract(context.Background(), "今天很开心")
	require.NoError(t, err)
	assert.Equal(t, "", label)
}

func TestCharacterExtractorClampsScores(t *testing.T) {
	ts := newChatServer(t, `{"agreableness":120,"conscientiousness":-5,"extraversion":55,"neuroticism":0,"openness":100}`)
	defer ts.Close()

	e := &characterExtractor{client: newTestClient(ts.URL)}
	scores, err := e.Extract(context.Background(), "一段文字")
	require.NoError(t, err)

	assert.Equal(t, 100.0, scores.Agreableness)
	assert.Equal(t, 0.0, scores.Conscientiousness)
	assert.Equal(t, 55.0, scores.Extraversion)
	assert.Equal(t, 100.0, scores.Openness)
}

func TestEventExtractorNilWhenNoEvent(t *testing.T) {
	ts := newChatServer(t, `{"event":null}`)
	defer ts.Close()

	e := &eventExtractor{client: newTestClient(ts.URL)}
	event, err := e.Extract(context.Background(), "一段文字")
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestEventExtractorNilWhenEventEmpty(t *testing.T) {
	ts := newChatServer(t, `{"event":{"characters":[],"topics":[]}}`)
	defer ts.Close()

	e := &eventExtractor{client: newTestClient(ts.URL)}
	event, err := e.Extract(context.Background(), "一段文字")
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestEventExtractorMapsAllAxes(t *testing.T) {
	ts := newChatServer(t, `{"event":{"characters":["小明"],"actions":["散步"],"locations":["公园"],"topics":["休闲"]}}`)
	defer ts.Close()

	e := &eventExtractor{client: newTestClient(ts.URL)}
	event, err := e.Extract(context.Background(), "和小明去公园散步")
	require.NoError(t, err)

	require.NotNil(t, event)
	assert.Equal(t, []string{"小明"}, event.Characters)
	assert.Equal(t, []string{"散步"}, event.Actions)
	assert.Equal(t, []string{"公园"}, event.Locations)
	assert.Equal(t, []string{"休闲"}, event.Topics)
}

func TestAdvisorTrimsWhitespace(t *testing.T) {
	ts := newChatServer(t, "\n  多喝水，早点睡。  \n")
	defer ts.Close()

	a := &modelAdvisor{client: newTestClient(ts.URL)}
	advice, err := a.Advise(context.Background(), "{}", "{}", "{}")
	require.NoError(t, err)
	assert.Equal(t, "多喝水，早点睡。", advice)
}

func TestCompleteRejectsNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":"rate limited"}`)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.complete(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestClampScoresInPlace(t *testing.T) {
	s := models.TraitScores{Agreableness: -1, Neuroticism: 101, Openness: 50}
	clampScores(&s)
	assert.Equal(t, 0.0, s.Agreableness)
	assert.Equal(t, 100.0, s.Neuroticism)
	assert.Equal(t, 50.0, s.Openness)
}
