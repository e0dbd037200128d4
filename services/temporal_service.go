package services

import (
	"context"
	"fmt"
	"time"

	"digital_diary/models"
	"digital_diary/utils"
)

// TemporalService 时间聚合器，把区间内日记的富化结果折叠进日历桶。
// 周按ISO星期几(1=周一..7=周日)分桶；月由连续7天窗口的聚合
// 重映射到实际"几号"构成；年由逐月窗口的月聚合构成。
// 各轴合并规则：情绪取并集去重，性格同日后写覆盖，事件串表示拼接。
type TemporalService struct {
	entries  EntryStore
	enricher Enricher
}

func NewTemporalService(entries EntryStore, enricher Enricher) *TemporalService {
	return &TemporalService{entries: entries, enricher: enricher}
}

const (
	daysPerWeek    = 7
	daysPerMonth   = 31
	monthsPerYear  = 12
	weekWindowSpan = 6 // 窗口起点到终点相隔6天，共7天
)

// dayKeyFunc 决定一篇日记落入1..7中的哪个桶。
// 周视图按ISO星期几分桶；月构建用窗口内偏移量分桶，
// 窗口起点不是周一时两者不同，偏移量才能保证重映射到正确的"几号"。
type dayKeyFunc func(createdAt time.Time) int

func weekdayKey(createdAt time.Time) int {
	return isoWeekday(createdAt)
}

func offsetKey(windowStart time.Time) dayKeyFunc {
	ws := dayStart(windowStart)
	return func(createdAt time.Time) int {
		// 按日历日逐天数，夏令时导致的23/25小时天不会算错
		target := dayStart(createdAt)
		day := 1
		for t := ws; t.Before(target); t = t.AddDate(0, 0, 1) {
			day++
		}
		return day
	}
}

// =====================
// 周粒度
// =====================

// WeekEmotions 区间内各星期几的情绪标签集合（去重）
func (s *TemporalService) WeekEmotions(ctx context.Context, userID int64, start, end time.Time) (map[int][]string, error) {
	return s.emotionBuckets(ctx, userID, start, end, weekdayKey)
}

// WeekCharacters 区间内各星期几的性格画像。
// 同一天有多篇日记时，创建时间最晚的那篇覆盖先前的。
func (s *TemporalService) WeekCharacters(ctx context.Context, userID int64, start, end time.Time) (map[int]map[string]any, error) {
	return s.characterBuckets(ctx, userID, start, end, weekdayKey)
}

// WeekEvents 区间内各星期几的事件字符串表示列表（拼接不去重）
func (s *TemporalService) WeekEvents(ctx context.Context, userID int64, start, end time.Time) (map[int][]string, error) {
	return s.eventBuckets(ctx, userID, start, end, weekdayKey)
}

func (s *TemporalService) emotionBuckets(ctx context.Context, userID int64, start, end time.Time, key dayKeyFunc) (map[int][]string, error) {
	buckets := denseListBuckets(daysPerWeek)
	err := s.forEachEntry(userID, start, end, key, func(entry *models.Entry, day int) error {
		emotion, err := s.enricher.GetEmotion(ctx, entry)
		if err != nil {
			return err
		}
		buckets[day] = utils.DeduplicateSlice(append(buckets[day], emotion.Flags()...))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buckets, nil
}

func (s *TemporalService) characterBuckets(ctx context.Context, userID int64, start, end time.Time, key dayKeyFunc) (map[int]map[string]any, error) {
	buckets := denseMapBuckets(daysPerWeek)
	err := s.forEachEntry(userID, start, end, key, func(entry *models.Entry, day int) error {
		trait, err := s.enricher.GetCharacter(ctx, entry)
		if err != nil {
			return err
		}
		buckets[day] = trait.AsMap()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buckets, nil
}

func (s *TemporalService) eventBuckets(ctx context.Context, userID int64, start, end time.Time, key dayKeyFunc) (map[int][]string, error) {
	buckets := denseListBuckets(daysPerWeek)
	err := s.forEachEntry(userID, start, end, key, func(entry *models.Entry, day int) error {
		events, err := s.enricher.GetEvents(ctx, entry)
		if err != nil {
			return err
		}
		for i := range events {
			buckets[day] = append(buckets[day], events[i].Describe())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buckets, nil
}

// forEachEntry 取区间内日记并按分桶键逐条回调。
// 日记按创建时间升序迭代，覆盖型合并因此是确定的。
func (s *TemporalService) forEachEntry(userID int64, start, end time.Time, key dayKeyFunc, fn func(entry *models.Entry, day int) error) error {
	entries, err := s.entries.ListEntriesByDateRange(userID, dayStart(start), dayEnd(end))
	if err != nil {
		return fmt.Errorf("查询区间日记失败: %w", err)
	}
	for i := range entries {
		if err := fn(&entries[i], key(entries[i].CreatedAt)); err != nil {
			return err
		}
	}
	return nil
}

// =====================
// 月粒度
// =====================

func (s *TemporalService) MonthEmotions(ctx context.Context, userID int64, start, end time.Time) (map[int][]string, error) {
	return buildMonth(start, end, emptyList, mergeUnion, func(ws, we time.Time) (map[int][]string, error) {
		return s.emotionBuckets(ctx, userID, ws, we, offsetKey(ws))
	})
}

func (s *TemporalService) MonthCharacters(ctx context.Context, userID int64, start, end time.Time) (map[int]map[string]any, error) {
	return buildMonth(start, end, emptyMap, mergeOverwrite, func(ws, we time.Time) (map[int]map[string]any, error) {
		return s.characterBuckets(ctx, userID, ws, we, offsetKey(ws))
	})
}

func (s *TemporalService) MonthEvents(ctx context.Context, userID int64, start, end time.Time) (map[int][]string, error) {
	return buildMonth(start, end, emptyList, mergeConcat, func(ws, we time.Time) (map[int][]string, error) {
		return s.eventBuckets(ctx, userID, ws, we, offsetKey(ws))
	})
}

// buildMonth 把区间切成连续7天窗口，对每个窗口按偏移量做周式聚合，
// 再把窗口内第1..7天的结果重映射到实际的"几号"上。
// 末窗口裁剪到区间终点，超出裁剪终点的桶不参与重映射，
// 下一个窗口从裁剪终点的次日开始，保证全覆盖且不重叠。
// 固定31天跨度下，跨月区间中两个日期可能落到同一个"几号"桶，
// 此时按轴合并规则处理，不是简单赋值。
func buildMonth[T any](start, end time.Time, empty func() T, merge func(old, next T) T, week func(ws, we time.Time) (map[int]T, error)) (map[int]T, error) {
	out := make(map[int]T, daysPerMonth)
	for day := 1; day <= daysPerMonth; day++ {
		out[day] = empty()
	}

	start, end = dayStart(start), dayStart(end)
	for ws := start; !ws.After(end); {
		we := minTime(ws.AddDate(0, 0, weekWindowSpan), end)
		wk, err := week(ws, we)
		if err != nil {
			return nil, err
		}
		for day := 1; day <= daysPerWeek; day++ {
			actual := ws.AddDate(0, 0, day-1)
			if actual.After(we) {
				continue
			}
			out[actual.Day()] = merge(out[actual.Day()], wk[day])
		}
		ws = we.AddDate(0, 0, 1)
	}
	return out, nil
}

// 各轴在"几号"桶冲突时的合并规则
func mergeUnion(old, next []string) []string {
	return utils.DeduplicateSlice(append(old, next...))
}

func mergeConcat(old, next []string) []string {
	return append(old, next...)
}

func mergeOverwrite(old, next map[string]any) map[string]any {
	return next
}

// =====================
// 年粒度
// =====================

func (s *TemporalService) YearEmotions(ctx context.Context, userID int64, start, end time.Time) (map[int]map[int][]string, error) {
	return buildYear(start, end, emptyList, func(ms, me time.Time) (map[int][]string, error) {
		return s.MonthEmotions(ctx, userID, ms, me)
	})
}

func (s *TemporalService) YearCharacters(ctx context.Context, userID int64, start, end time.Time) (map[int]map[int]map[string]any, error) {
	return buildYear(start, end, emptyMap, func(ms, me time.Time) (map[int]map[string]any, error) {
		return s.MonthCharacters(ctx, userID, ms, me)
	})
}

func (s *TemporalService) YearEvents(ctx context.Context, userID int64, start, end time.Time) (map[int]map[int][]string, error) {
	return buildYear(start, end, emptyList, func(ms, me time.Time) (map[int][]string, error) {
		return s.MonthEvents(ctx, userID, ms, me)
	})
}

// buildYear 把区间切成逐自然月窗口，对每个窗口做月聚合，
// 按所属月份编号挂进1..12的稠密结构，边界月裁剪到区间终点。
func buildYear[T any](start, end time.Time, empty func() T, month func(ms, me time.Time) (map[int]T, error)) (map[int]map[int]T, error) {
	out := make(map[int]map[int]T, monthsPerYear)
	for m := 1; m <= monthsPerYear; m++ {
		days := make(map[int]T, daysPerMonth)
		for day := 1; day <= daysPerMonth; day++ {
			days[day] = empty()
		}
		out[m] = days
	}

	start, end = dayStart(start), dayStart(end)
	for ms := start; !ms.After(end); {
		me := minTime(endOfMonth(ms), end)
		mm, err := month(ms, me)
		if err != nil {
			return nil, err
		}
		out[int(ms.Month())] = mm
		ms = me.AddDate(0, 0, 1)
	}
	return out, nil
}

// =====================
// 日历工具
// =====================

func emptyList() []string      { return []string{} }
func emptyMap() map[string]any { return map[string]any{} }

func denseListBuckets(size int) map[int][]string {
	buckets := make(map[int][]string, size)
	for key := 1; key <= size; key++ {
		buckets[key] = emptyList()
	}
	return buckets
}

func denseMapBuckets(size int) map[int]map[string]any {
	buckets := make(map[int]map[string]any, size)
	for key := 1; key <= size; key++ {
		buckets[key] = emptyMap()
	}
	return buckets
}

// isoWeekday ISO星期几，周一=1..周日=7
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999000, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
