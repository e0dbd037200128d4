package services

import (
	"context"
	"fmt"

	"digital_diary/extractor"
	"digital_diary/logger"
	"digital_diary/models"
	"digital_diary/utils"
)

// EnrichmentService 日记富化缓存。
// 每篇日记每个分析轴至多计算一次，结果落库后永久复用，
// 追加内容时由EntryRepo在同一事务内删除旧结果触发重算。
type EnrichmentService struct {
	store      EnrichmentStore
	extractors *extractor.Set
}

func NewEnrichmentService(store EnrichmentStore, extractors *extractor.Set) *EnrichmentService {
	return &EnrichmentService{store: store, extractors: extractors}
}

// GetEmotion 查询或计算日记的情绪标记。
// 逐分块调用情绪抽取器，任一分块命中某情绪即点亮该情绪位。
func (s *EnrichmentService) GetEmotion(ctx context.Context, entry *models.Entry) (*models.Emotion, error) {
	cached, err := s.store.GetEmotionByEntry(entry.ID)
	if err == nil {
		return cached, nil
	}
	if !utils.IsSQLNoRowsError(err) {
		return nil, fmt.Errorf("查询情绪结果失败: %w", err)
	}

	emotion := &models.Emotion{EntryID: entry.ID}
	for _, chunk := range utils.ChunkText(entry.AnalysisText()) {
		label, err := s.extractors.Emotion.Extract(ctx, chunk)
		if err != nil {
			logger.Error("情绪抽取失败", "entry_id", entry.ID, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		emotion.SetFlag(label)
	}

	saved, err := s.store.SaveEmotion(emotion)
	if err != nil {
		return nil, fmt.Errorf("保存情绪结果失败: %w", err)
	}
	logger.Debug("情绪富化完成", "entry_id", entry.ID, "flags", saved.Flags())
	return saved, nil
}

// GetCharacter 查询或计算日记的性格画像。
// 各分块得分求和后按实际贡献得分的分块数取平均，再推导4字母类型。
// 文本太短没有任何分块时，落库全零画像避免反复空算。
func (s *EnrichmentService) GetCharacter(ctx context.Context, entry *models.Entry) (*models.CharacterTrait, error) {
	cached, err := s.store.GetCharacterByEntry(entry.ID)
	if err == nil {
		return cached, nil
	}
	if !utils.IsSQLNoRowsError(err) {
		return nil, fmt.Errorf("查询性格结果失败: %w", err)
	}

	var sum models.TraitScores
	contributing := 0
	for _, chunk := range utils.ChunkText(entry.AnalysisText()) {
		scores, err := s.extractors.Character.Extract(ctx, chunk)
		if err != nil {
			logger.Error("性格抽取失败", "entry_id", entry.ID, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		sum.Add(scores)
		contributing++
	}
	sum.Divide(float64(contributing))

	trait := &models.CharacterTrait{
		EntryID:           entry.ID,
		Agreableness:      sum.Agreableness,
		Conscientiousness: sum.Conscientiousness,
		Extraversion:      sum.Extraversion,
		Neuroticism:       sum.Neuroticism,
		Openness:          sum.Openness,
		MBTIType:          models.DeriveMBTIType(sum),
	}

	saved, err := s.store.SaveCharacter(trait)
	if err != nil {
		return nil, fmt.Errorf("保存性格结果失败: %w", err)
	}
	logger.Debug("性格富化完成", "entry_id", entry.ID, "mbti_type", saved.MBTIType, "chunks", contributing)
	return saved, nil
}

// GetEvents 查询或计算日记的事件列表。
// 每分块至多抽出一个事件，全部分块都没有事件时不落库，
// 下次访问会重新尝试抽取。
func (s *EnrichmentService) GetEvents(ctx context.Context, entry *models.Entry) ([]models.Event, error) {
	cached, err := s.store.ListEventsByEntry(entry.ID)
	if err != nil {
		return nil, fmt.Errorf("查询事件结果失败: %w", err)
	}
	if len(cached) > 0 {
		return cached, nil
	}

	events := make([]models.Event, 0)
	for _, chunk := range utils.ChunkText(entry.AnalysisText()) {
		event, err := s.extractors.Event.Extract(ctx, chunk)
		if err != nil {
			logger.Error("事件抽取失败", "entry_id", entry.ID, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		if event != nil {
			events = append(events, *event)
		}
	}
	if len(events) == 0 {
		return events, nil
	}

	saved, err := s.store.SaveEvents(entry.ID, events)
	if err != nil {
		return nil, fmt.Errorf("保存事件结果失败: %w", err)
	}
	logger.Debug("事件富化完成", "entry_id", entry.ID, "count", len(saved))
	return saved, nil
}
