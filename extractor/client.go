package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"digital_diary/config"
	"digital_diary/logger"
	"digital_diary/utils"
)

// 模型服务走OpenAI兼容的chat completions协议
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// modelClient 模型服务HTTP客户端，进程内共享一个实例
type modelClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func newModelClient(cfg *config.Config) *modelClient {
	timeout := cfg.ModelServer.TimeoutSec
	if timeout <= 0 {
		timeout = 60
	}

	// 如果配置中的API Key是环境变量引用，则从环境变量中获取
	apiKey := cfg.ModelServer.APIKey
	if strings.HasPrefix(apiKey, "${") && strings.HasSuffix(apiKey, "}") {
		envName := apiKey[2 : len(apiKey)-1]
		apiKey = os.Getenv(envName)
		logger.Info("从环境变量获取模型API Key", "env_var", envName)
	}

	return &modelClient{
		baseURL: strings.TrimRight(cfg.ModelServer.BaseURL, "/"),
		apiKey:  apiKey,
		model:   cfg.ModelServer.Model,
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// complete 发送一次推理请求，返回模型生成的文本内容
func (c *modelClient) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		logger.Error("序列化请求体失败", "error", err)
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewBuffer(reqJSON))
	if err != nil {
		logger.Error("创建HTTP请求失败", "error", err)
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	startTime := time.Now()
	resp, err := c.http.Do(req)
	requestDuration := time.Since(startTime)
	if err != nil {
		logger.Error("模型请求失败", "error", err, "duration_ms", requestDuration.Milliseconds())
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("读取模型响应失败", "error", err)
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		responsePreview := string(body)
		if len(responsePreview) > 500 {
			responsePreview = responsePreview[:500] + "..."
		}
		logger.Error("模型API请求失败", "status", resp.StatusCode, "response", responsePreview)
		return "", fmt.Errorf("模型API请求失败: %d - %s", resp.StatusCode, responsePreview)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		logger.Error("解析模型响应失败", "error", err, "response_body_preview", string(body[:utils.Min(len(body), 200)]))
		return "", err
	}

	if len(cr.Choices) == 0 {
		logger.Error("模型响应中没有内容", "response_body", string(body))
		return "", fmt.Errorf("模型响应中没有内容")
	}

	content := cr.Choices[0].Message.Content
	logger.Debug("模型推理完成",
		"tokens_prompt", cr.Usage.PromptTokens,
		"tokens_completion", cr.Usage.CompletionTokens,
		"duration_ms", requestDuration.Milliseconds(),
		"finish_reason", cr.Choices[0].FinishReason)

	return content, nil
}

// completeJSON 发送推理请求并把内容中的JSON部分解析到dst
func (c *modelClient) completeJSON(ctx context.Context, prompt string, dst any) error {
	content, err := c.complete(ctx, prompt)
	if err != nil {
		return err
	}

	jsonContent := extractJSONFromText(content)
	if err := json.Unmarshal([]byte(jsonContent), dst); err != nil {
		logger.Error("解析模型返回的JSON内容失败", "error", err, "content", content)
		return fmt.Errorf("解析模型返回的JSON内容失败: %w", err)
	}
	return nil
}

// extractJSONFromText 从文本中提取JSON部分
func extractJSONFromText(text string) string {
	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")
	if startIdx >= 0 && endIdx > startIdx {
		return text[startIdx : endIdx+1]
	}

	// 找不到大括号时，尝试查找```json和```之间的内容
	startMarker := "```json"
	endMarker := "```"
	startIdx = strings.Index(text, startMarker)
	if startIdx >= 0 {
		startIdx += len(startMarker)
		endIdx = strings.Index(text[startIdx:], endMarker)
		if endIdx > 0 {
			return strings.TrimSpace(text[startIdx : startIdx+endIdx])
		}
	}

	logger.Warn("无法从文本中提取JSON部分，返回原始文本")
	return text
}
