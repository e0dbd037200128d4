package extractor

import (
	"context"
	"strings"

	"digital_diary/logger"
	"digital_diary/models"
)

// emotionExtractor 基于模型服务的情绪抽取器
type emotionExtractor struct {
	client *modelClient
}

func (e *emotionExtractor) Extract(ctx context.Context, chunk string) (string, error) {
	var out struct {
		Emotion string `json:"emotion"`
	}
	if err := e.client.completeJSON(ctx, buildEmotionPrompt(chunk), &out); err != nil {
		return "", err
	}

	label := strings.ToLower(strings.TrimSpace(out.Emotion))
	for _, known := range models.EmotionLabels {
		if label == known {
			return label, nil
		}
	}
	if label != "" {
		logger.Warn("模型返回了未知情绪标签，按无信号处理", "label", label)
	}
	return "", nil
}

// characterExtractor 基于模型服务的性格抽取器
type characterExtractor struct {
	client *modelClient
}

func (e *characterExtractor) Extract(ctx context.Context, chunk string) (models.TraitScores, error) {
	var scores models.TraitScores
	if err := e.client.completeJSON(ctx, buildCharacterPrompt(chunk), &scores); err != nil {
		return models.TraitScores{}, err
	}
	clampScores(&scores)
	return scores, nil
}

// clampScores 得分夹到[0,100]，模型偶尔会越界
func clampScores(s *models.TraitScores) {
	clamp := func(v *float64) {
		if *v < 0 {
			*v = 0
		}
		if *v > 100 {
			*v = 100
		}
	}
	clamp(&s.Agreableness)
	clamp(&s.Conscientiousness)
	clamp(&s.Extraversion)
	clamp(&s.Neuroticism)
	clamp(&s.Openness)
}

// eventExtractor 基于模型服务的事件抽取器
type eventExtractor struct {
	client *modelClient
}

type eventPayload struct {
	Characters    []string `json:"characters"`
	Actions       []string `json:"actions"`
	Locations     []string `json:"locations"`
	Times         []string `json:"times"`
	Objects       []string `json:"objects"`
	Subjects      []string `json:"subjects"`
	Adjectives    []string `json:"adjectives"`
	Adverbs       []string `json:"adverbs"`
	Topics        []string `json:"topics"`
	Organizations []string `json:"organizations"`
	SubEvents     []string `json:"sub_events"`
}

func (e *eventExtractor) Extract(ctx context.Context, chunk string) (*models.Event, error) {
	var out struct {
		Event *eventPayload `json:"event"`
	}
	if err := e.client.completeJSON(ctx, buildEventPrompt(chunk), &out); err != nil {
		return nil, err
	}
	if out.Event == nil {
		return nil, nil
	}

	event := &models.Event{
		Characters:    out.Event.Characters,
		Actions:       out.Event.Actions,
		Locations:     out.Event.Locations,
		Times:         out.Event.Times,
		Objects:       out.Event.Objects,
		Subjects:      out.Event.Subjects,
		Adjectives:    out.Event.Adjectives,
		Adverbs:       out.Event.Adverbs,
		Topics:        out.Event.Topics,
		Organizations: out.Event.Organizations,
		SubEvents:     out.Event.SubEvents,
	}
	if event.IsEmpty() {
		return nil, nil
	}
	return event, nil
}

// modelAdvisor 基于模型服务的建议生成器
type modelAdvisor struct {
	client *modelClient
}

func (a *modelAdvisor) Advise(ctx context.Context, emotions, characters, events string) (string, error) {
	content, err := a.client.complete(ctx, buildAdvicePrompt(emotions, characters, events))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}
