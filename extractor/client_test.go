package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"digital_diary/config"
)

func TestExtractJSONFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"纯JSON", `{"emotion":"joy"}`, `{"emotion":"joy"}`},
		{"夹杂说明文字", `分析结果如下：{"emotion":"joy"} 以上。`, `{"emotion":"joy"}`},
		{"嵌套对象取最外层", `{"event":{"topics":["a"]}}`, `{"event":{"topics":["a"]}}`},
		{"代码块兜底", "```json\n[1, 2]\n```", "[1, 2]"},
		{"无JSON原样返回", "抱歉，我无法分析。", "抱歉，我无法分析。"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSONFromText(tt.text))
		})
	}
}

func TestNewModelClientResolvesEnvAPIKey(t *testing.T) {
	t.Setenv("TEST_MODEL_KEY", "sk-from-env")

	cfg := &config.Config{}
	cfg.ModelServer.BaseURL = "http://model.local/"
	cfg.ModelServer.APIKey = "${TEST_MODEL_KEY}"
	cfg.ModelServer.Model = "qwen-plus"

	c := newModelClient(cfg)
	assert.Equal(t, "sk-from-env", c.apiKey)
	// 末尾斜杠被去掉，拼接路径时不会出现双斜杠
	assert.Equal(t, "http://model.local", c.baseURL)
}

func TestNewModelClientLiteralAPIKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.ModelServer.APIKey = "sk-literal"

	c := newModelClient(cfg)
	assert.Equal(t, "sk-literal", c.apiKey)
}
