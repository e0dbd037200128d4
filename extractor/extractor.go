package extractor

import (
	"context"

	"digital_diary/config"
	"digital_diary/models"
)

// EmotionExtractor 对单个文本分块识别情绪，返回情绪标签，空串表示无信号
type EmotionExtractor interface {
	Extract(ctx context.Context, chunk string) (string, error)
}

// CharacterExtractor 对单个文本分块打出五维性格得分
type CharacterExtractor interface {
	Extract(ctx context.Context, chunk string) (models.TraitScores, error)
}

// EventExtractor 从单个文本分块中抽取结构化事件，nil表示该分块没有事件
type EventExtractor interface {
	Extract(ctx context.Context, chunk string) (*models.Event, error)
}

// Advisor 根据聚合后的情绪/性格/事件生成建议文本
type Advisor interface {
	Advise(ctx context.Context, emotions, characters, events string) (string, error)
}

// Set 三类抽取器加建议生成器的能力集合。
// 进程内只构建一次，经构造函数注入到各服务，避免全局可变单例。
type Set struct {
	Emotion   EmotionExtractor
	Character CharacterExtractor
	Event     EventExtractor
	Advisor   Advisor
}

// NewSet 构建模型服务抽取器集合，底层共享同一个HTTP客户端
func NewSet(cfg *config.Config) *Set {
	client := newModelClient(cfg)
	return &Set{
		Emotion:   &emotionExtractor{client: client},
		Character: &characterExtractor{client: client},
		Event:     &eventExtractor{client: client},
		Advisor:   &modelAdvisor{client: client},
	}
}
