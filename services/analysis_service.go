package services

import (
	"context"
	"fmt"
	"time"

	"digital_diary/models"
	"digital_diary/utils"
)

// AnalysisService 聚合门面。负责把(周,年)/(月,年)/(年)请求换算成日期区间、
// 校验区间不早于账号创建时间，然后委托时间聚合器。
type AnalysisService struct {
	users    UserStore
	entries  EntryStore
	temporal *TemporalService
	enricher Enricher
}

func NewAnalysisService(users UserStore, entries EntryStore, temporal *TemporalService, enricher Enricher) *AnalysisService {
	return &AnalysisService{users: users, entries: entries, temporal: temporal, enricher: enricher}
}

// =====================
// 时间区间换算
// =====================

// isoWeekRange ISO周区间：周一起始，共7天
func isoWeekRange(week, year int) (time.Time, time.Time) {
	// 1月4日必然落在ISO第1周
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.Local)
	week1Monday := jan4.AddDate(0, 0, -(isoWeekday(jan4) - 1))
	start := week1Monday.AddDate(0, 0, (week-1)*7)
	return start, start.AddDate(0, 0, 6)
}

// monthRange 月区间：当月1号起固定跨31天，不按自然月长度收口，
// 二月的区间终点会落到三月
func monthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 31)
}

// yearRange 年区间：1月1日到12月31日
func yearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	return start, time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)
}

// validatePeriod 区间终点早于账号创建时间时拒绝请求，不触达日记表
func (s *AnalysisService) validatePeriod(userID int64, end time.Time) error {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if utils.IsSQLNoRowsError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("查询用户失败: %w", err)
	}
	if user.CreatedAt.After(dayEnd(end)) {
		return ErrInvalidPeriod
	}
	return nil
}

// =====================
// 单篇日记
// =====================

func (s *AnalysisService) EntryEmotion(ctx context.Context, userID, entryID int64) (*models.Emotion, error) {
	entry, err := s.getEntry(entryID, userID)
	if err != nil {
		return nil, err
	}
	return s.enricher.GetEmotion(ctx, entry)
}

func (s *AnalysisService) EntryCharacter(ctx context.Context, userID, entryID int64) (*models.CharacterTrait, error) {
	entry, err := s.getEntry(entryID, userID)
	if err != nil {
		return nil, err
	}
	return s.enricher.GetCharacter(ctx, entry)
}

func (s *AnalysisService) EntryEvents(ctx context.Context, userID, entryID int64) ([]models.Event, error) {
	entry, err := s.getEntry(entryID, userID)
	if err != nil {
		return nil, err
	}
	return s.enricher.GetEvents(ctx, entry)
}

// EntrySummary 单篇日记的情绪加性格组合视图，与周期摘要同构
func (s *AnalysisService) EntrySummary(ctx context.Context, userID, entryID int64) (map[string]any, error) {
	emotion, err := s.EntryEmotion(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	trait, err := s.EntryCharacter(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"emotions": emotion.Flags(), "characters": trait.AsMap()}, nil
}

func (s *AnalysisService) getEntry(entryID, userID int64) (*models.Entry, error) {
	entry, err := s.entries.GetEntryByID(entryID, userID)
	if err != nil {
		if utils.IsSQLNoRowsError(err) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("查询日记失败: %w", err)
	}
	return entry, nil
}

// =====================
// 周粒度
// =====================

func (s *AnalysisService) WeekEmotions(ctx context.Context, userID int64, week, year int) (map[int][]string, error) {
	start, end := isoWeekRange(week, year)
	if err := s.validatePeriod(userID, end); err != nil {
		return nil, err
	}
	return s.temporal.WeekEmotions(ctx, userID, start, end)
}

func (s *AnalysisService) WeekCharacters(ctx context.Context, userID int64, week, year int) (map[int]map[string]any, error) {
	start, end := isoWeekRange(week, year)
	if err := s.validatePeriod(userID, end); err != nil {
		return nil, err
	}
	return s.temporal.WeekCharacters(ctx, userID, start, end)
}

func (s *AnalysisService) WeekEvents(ctx context.Context, userID int64, week, year int) (map[int][]string, error) {
	start, end := isoWeekRange(week, year)
	if err := s.validatePeriod(userID, end); err != nil {
		return nil, err
	}
	return s.temporal.WeekEvents(ctx, userID, start, end)
}

// WeekSummary 情绪加性格的组合视图，事件不参与摘要
func (s *AnalysisService) WeekSummary(ctx context.Context, userID int64, week, year int) (map[string]any, error) {
	emotions, err := s.WeekEmotions(ctx, userID, week, year)
	if err != nil {
		return nil, err
	}
	characters, err := s.WeekCharacters(ctx, userID, week, year)
	if err != nil {
		return nil, err
	}
	return map[string]any{"emotions": emotions, "characters": characters}, nil
}

// =====================
// 月粒度
// =====================

func (s *AnalysisService) MonthEmotions(ctx context.Context, userID int64, month, year int) (map[int][]string, error) {
	start, end := monthRange(month, year)
	if err := s.validatePeriod(userID, end); err != nil {
		return nil, err
	}
	return s.temporal.MonthEmotions(ctx, userID, start, end)
}

func (s *AnalysisService) MonthCharacters(ctx context.Context, userID int64, month, year int) (map[int]map[string]any, error) {
	start, end := monthRange(month, year)
	if err := s.validatePeriod(userID, end); err != nil {
		return nil, err
	}
	return s.temporal.MonthCharacters(ctx, userID, start, end)
}

func (s *AnalysisService) MonthEvents(ctx context.Context, userID int64, month, year int) (map[int][]string, error) {
	start, end := monthRange(month, year)
	if err := s.validatePeriod(userID, end); err != nil {
		return nil, err
	}
	return s.temporal.MonthEvents(ctx, userID, start, end)
}

func (s *AnalysisService) MonthSummary(ctx context.Context, userID int64, month, year int) (map[string]any, error) {
	emotions, err := s.MonthEmotions(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}
	characters, err := s.MonthCharacters(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}
	return map[string]any{"emotions": emotions, "characters": characters}, nil
}

// =====================
// 年粒度
// =====================

func (s *AnalysisService) YearEmotions(ctx context.Context, userID int64, year int) (map[int]map[int][]string, error) {
	start, end := yearRange(year)
	if err := s.validatePeriod(userID, end); err != nil {
		return nil, err
	}
	return s.temporal.YearEmotions(ctx, userID, start, end)
}

func (s *AnalysisService) YearCharacters(ctx context.Context, userID int64, year int) (map[int]map[int]map[string]any, error) {
	start, end := yearRange(year)
	if err := s.validatePeriod(userID, end); err != nil {
		return nil, err
	}
	return s.temporal.YearCharacters(ctx, userID, start, end)
}

func (s *AnalysisService) YearEvents(ctx context.Context, userID int64, year int) (map[int]map[int][]string, error) {
	start, end := yearRange(year)
	if err := s.validatePeriod(userID, end); err != nil {
		return nil, err
	}
	return s.temporal.YearEvents(ctx, userID, start, end)
}

func (s *AnalysisService) YearSummary(ctx context.Context, userID int64, year int) (map[string]any, error) {
	emotions, err := s.YearEmotions(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	characters, err := s.YearCharacters(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	return map[string]any{"emotions": emotions, "characters": characters}, nil
}
