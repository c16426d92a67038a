package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"skillreel_backend/internal/config"
	"skillreel_backend/internal/model"
	"skillreel_backend/pkg/logger"

	"go.uber.org/zap"
)

// GradeVerdict AI 判题结论
type GradeVerdict struct {
	Passed     bool             `json:"passed"`
	Confidence model.Confidence `json:"confidence"`
	Feedback   string           `json:"feedback"`
}

// FallbackFeedback 判题服务不可用时返回的兜底鼓励语。
// 产品约定：技术故障永远不惩罚用户。
const FallbackFeedback = "回答已收到，做得不错！这道题的评分服务暂时繁忙，本次按通过处理，继续保持。"

type GradingService struct {
	config config.GradingConfig
	client *http.Client
}

func NewGradingService(cfg config.GradingConfig) *GradingService {
	return &GradingService{
		config: cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

type gradeChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type gradeChatRequest struct {
	Model    string             `json:"model"`
	Messages []gradeChatMessage `json:"messages"`
}

type gradeChatResponse struct {
	Choices []struct {
		Message gradeChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// modelVerdict 模型按约定输出的 JSON 结构
type modelVerdict struct {
	Passed     bool   `json:"passed"`
	Confidence string `json:"confidence"`
	Feedback   string `json:"feedback"`
}

// Grade 调用外部模型给自由文本答案打分。
// 任何网络/解析失败都降级为宽松兜底结论（passed=true, confidence=low），
// 永远不向调用方返回错误。
func (s *GradingService) Grade(topic, question, userAnswer string) *GradeVerdict {
	verdict, err := s.gradeOnce(topic, question, userAnswer)
	if err != nil {
		logger.Log.Warn("Grading call failed, using lenient fallback",
			zap.String("topic", topic), zap.Error(err))
		return &GradeVerdict{
			Passed:     true,
			Confidence: model.ConfidenceLow,
			Feedback:   FallbackFeedback,
		}
	}
	return verdict
}

func (s *GradingService) gradeOnce(topic, question, userAnswer string) (*GradeVerdict, error) {
	systemContent := "你是一个宽容的学习助教，负责判断学生是否认真看过视频。" +
		"评分原则：只有空白、灌水或自相矛盾的回答才判不通过；只要答案表明学生理解了要点就判通过。" +
		"反馈不超过 3 句话、40 个词：第一句肯定学生，第二句给一个具体的延伸点。" +
		"严格输出 JSON，不要输出其他内容：{\"passed\": bool, \"confidence\": \"low\"|\"medium\"|\"high\", \"feedback\": string}"

	userContent := fmt.Sprintf("主题：%s\n题目：%s\n学生回答：%s", topic, question, userAnswer)

	reqBody := gradeChatRequest{
		Model: s.config.Model,
		Messages: []gradeChatMessage{
			{Role: "system", Content: systemContent},
			{Role: "user", Content: userContent},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("grading API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result gradeChatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, fmt.Errorf("grading API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("grading API returned no choices")
	}

	return parseVerdict(result.Choices[0].Message.Content)
}

// parseVerdict 解析模型输出。模型偶尔会包一层 Markdown 代码块，先剥掉。
func parseVerdict(content string) (*GradeVerdict, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var mv modelVerdict
	if err := json.Unmarshal([]byte(content), &mv); err != nil {
		return nil, fmt.Errorf("unparseable verdict: %w", err)
	}
	if strings.TrimSpace(mv.Feedback) == "" {
		return nil, fmt.Errorf("verdict missing feedback")
	}

	return &GradeVerdict{
		Passed:     mv.Passed,
		Confidence: model.ValidConfidence(mv.Confidence),
		Feedback:   mv.Feedback,
	}, nil
}
