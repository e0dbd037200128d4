package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"digital_diary/extractor"
	"digital_diary/logger"
	"digital_diary/models"
	"digital_diary/utils"
)

// AdviceService 根据富化结果生成建议文本。
// 周建议生成一次后落库复用，月/年建议每次实时生成。
type AdviceService struct {
	users    UserStore
	entries  EntryStore
	advice   AdviceStore
	enricher Enricher
	temporal *TemporalService
	advisor  extractor.Advisor
}

func NewAdviceService(users UserStore, entries EntryStore, advice AdviceStore,
	enricher Enricher, temporal *TemporalService, advisor extractor.Advisor) *AdviceService {
	return &AdviceService{
		users:    users,
		entries:  entries,
		advice:   advice,
		enricher: enricher,
		temporal: temporal,
		advisor:  advisor,
	}
}

// AdviseEntry 针对单篇日记生成建议，不落库
func (s *AdviceService) AdviseEntry(ctx context.Context, userID, entryID int64) (string, error) {
	entry, err := s.entries.GetEntryByID(entryID, userID)
	if err != nil {
		if utils.IsSQLNoRowsError(err) {
			return "", ErrEntryNotFound
		}
		return "", fmt.Errorf("查询日记失败: %w", err)
	}

	emotion, err := s.enricher.GetEmotion(ctx, entry)
	if err != nil {
		return "", err
	}
	trait, err := s.enricher.GetCharacter(ctx, entry)
	if err != nil {
		return "", err
	}
	events, err := s.enricher.GetEvents(ctx, entry)
	if err != nil {
		return "", err
	}

	descs := make([]string, 0, len(events))
	for i := range events {
		descs = append(descs, events[i].Describe())
	}

	return s.advisor.Advise(ctx, describeJSON(emotion.Flags()), describeJSON(trait.AsMap()), strings.Join(descs, "\n"))
}

// AdviseWeek 生成指定ISO周的建议。已有落库建议时直接复用，
// 否则聚合该周三个轴的结果送入模型，生成后落库。
func (s *AdviceService) AdviseWeek(ctx context.Context, userID int64, week, year int) (string, error) {
	start, end := isoWeekRange(week, year)
	if err := s.validatePeriod(userID, end); err != nil {
		return "", err
	}

	cached, err := s.advice.GetWeekAdvice(userID, week, year)
	if err == nil {
		logger.Debug("命中周建议缓存", "user_id", userID, "week", week, "year", year)
		return cached.Advice, nil
	}
	if !utils.IsSQLNoRowsError(err) {
		return "", fmt.Errorf("查询建议失败: %w", err)
	}

	advice, err := s.advisePeriod(ctx, userID, start, end)
	if err != nil {
		return "", err
	}

	if _, err := s.advice.InsertAdvice(&models.Advice{
		UserID: userID,
		Advice: advice,
		Week:   &week,
		Year:   year,
	}); err != nil {
		// 落库失败不影响本次结果，下次重新生成
		logger.Warn("周建议落库失败", "user_id", userID, "week", week, "error", err)
	}
	return advice, nil
}

// AdviseMonth 生成指定月份的建议，实时生成不落库
func (s *AdviceService) AdviseMonth(ctx context.Context, userID int64, month, year int) (string, error) {
	start, end := monthRange(month, year)
	if err := s.validatePeriod(userID, end); err != nil {
		return "", err
	}
	return s.advisePeriod(ctx, userID, start, end)
}

// AdviseYear 生成指定年份的建议，实时生成不落库
func (s *AdviceService) AdviseYear(ctx context.Context, userID int64, year int) (string, error) {
	start, end := yearRange(year)
	if err := s.validatePeriod(userID, end); err != nil {
		return "", err
	}
	return s.advisePeriod(ctx, userID, start, end)
}

// advisePeriod 聚合区间内三个轴的周桶结果并生成建议。
// 区间内没有任何日记时返回ErrNoAdviceData。
func (s *AdviceService) advisePeriod(ctx context.Context, userID int64, start, end time.Time) (string, error) {
	entries, err := s.entries.ListEntriesByDateRange(userID, dayStart(start), dayEnd(end))
	if err != nil {
		return "", fmt.Errorf("查询区间日记失败: %w", err)
	}
	if len(entries) == 0 {
		return "", ErrNoAdviceData
	}

	emotions, err := s.temporal.WeekEmotions(ctx, userID, start, end)
	if err != nil {
		return "", err
	}
	characters, err := s.temporal.WeekCharacters(ctx, userID, start, end)
	if err != nil {
		return "", err
	}
	events, err := s.temporal.WeekEvents(ctx, userID, start, end)
	if err != nil {
		return "", err
	}

	return s.advisor.Advise(ctx, describeJSON(emotions), describeJSON(characters), describeJSON(events))
}

func (s *AdviceService) validatePeriod(userID int64, end time.Time) error {
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

func describeJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
