package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital_diary/models"
)

type fakeAdviceStore struct {
	records []models.Advice
	inserts int
	failPut bool
}

func (f *fakeAdviceStore) GetWeekAdvice(userID int64, week, year int) (*models.Advice, error) {
	for i := range f.records {
		r := f.records[i]
		if r.UserID == userID && r.Year == year && r.Week != nil && *r.Week == week {
			return &r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdviceStore) InsertAdvice(a *models.Advice) (int64, error) {
	f.inserts++
	if f.failPut {
		return 0, sql.ErrConnDone
	}
	saved := *a
	saved.ID = int64(len(f.records) + 1)
	f.records = append(f.records, saved)
	return saved.ID, nil
}

// stubAdvisor 记录每次调用的入参，按预置文本应答
type stubAdvisor struct {
	advice string
	calls  int
	inputs [][3]string
}

func (s *stubAdvisor) Advise(ctx context.Context, emotions, characters, events string) (string, error) {
	s.calls++
	s.inputs = append(s.inputs, [3]string{emotions, characters, events})
	return s.advice, nil
}

func newAdviceFixture(entries *fakeEntryStore, enricher Enricher, store *fakeAdviceStore, advisor *stubAdvisor) *AdviceService {
	users := userCreatedAt(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local))
	temporal := NewTemporalService(entries, enricher)
	return NewAdviceService(users, entries, store, enricher, temporal, advisor)
}

func TestAdviseWeekGeneratesAndCaches(t *testing.T) {
	// 2024年第10周：3月4日-10日
	entries := &fakeEntryStore{entries: []models.Entry{
		entryAt(1, 1, date(2024, time.March, 6)),
	}}
	enricher := &fakeEnricher{flags: map[int64][]string{1: {"joy"}}}
	store := &fakeAdviceStore{}
	advisor := &stubAdvisor{advice: "保持好心情"}
	svc := newAdviceFixture(entries, enricher, store, advisor)

	got, err := svc.AdviseWeek(context.Background(), 1, 10, 2024)
	require.NoError(t, err)
	assert.Equal(t, "保持好心情", got)
	assert.Equal(t, 1, store.inserts)

	// 第二次命中落库缓存，不再调用模型
	got, err = svc.AdviseWeek(context.Background(), 1, 10, 2024)
	require.NoError(t, err)
	assert.Equal(t, "保持好心情", got)
	assert.Equal(t, 1, advisor.calls)
}

func TestAdviseWeekEmptyPeriod(t *testing.T) {
	svc := newAdviceFixture(&fakeEntryStore{}, &fakeEnricher{}, &fakeAdviceStore{}, &stubAdvisor{})

	_, err := svc.AdviseWeek(context.Background(), 1, 10, 2024)
	assert.ErrorIs(t, err, ErrNoAdviceData)
}

func TestAdviseWeekInsertFailureNonFatal(t *testing.T) {
	entries := &fakeEntryStore{entries: []models.Entry{
		entryAt(1, 1, date(2024, time.March, 6)),
	}}
	store := &fakeAdviceStore{failPut: true}
	svc := newAdviceFixture(entries, &fakeEnricher{}, store, &stubAdvisor{advice: "建议"})

	got, err := svc.AdviseWeek(context.Background(), 1, 10, 2024)
	require.NoError(t, err)
	assert.Equal(t, "建议", got)
}

func TestAdviseWeekBeforeAccountCreation(t *testing.T) {
	svc := newAdviceFixture(&fakeEntryStore{}, &fakeEnricher{}, &fakeAdviceStore{}, &stubAdvisor{})

	// 用户2024年初注册，2023年第10周在注册之前
	_, err := svc.AdviseWeek(context.Background(), 1, 10, 2023)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestAdviseMonthNotCached(t *testing.T) {
	entries := &fakeEntryStore{entries: []models.Entry{
		entryAt(1, 1, date(2024, time.March, 6)),
	}}
	store := &fakeAdviceStore{}
	advisor := &stubAdvisor{advice: "三月过得不错"}
	svc := newAdviceFixture(entries, &fakeEnricher{flags: map[int64][]string{1: {"joy"}}}, store, advisor)

	_, err := svc.AdviseMonth(context.Background(), 1, 3, 2024)
	require.NoError(t, err)
	_, err = svc.AdviseMonth(context.Background(), 1, 3, 2024)
	require.NoError(t, err)

	// 月建议实时生成，每次都调用模型且不落库
	assert.Equal(t, 2, advisor.calls)
	assert.Zero(t, store.inserts)
}

func TestAdviseEntryFeedsAllAxes(t *testing.T) {
	entries := &fakeEntryStore{entries: []models.Entry{
		entryAt(1, 1, date(2024, time.March, 6)),
	}}
	enricher := &fakeEnricher{
		flags:  map[int64][]string{1: {"joy"}},
		events: map[int64][]models.Event{1: {{Topics: []string{"散步"}}}},
	}
	advisor := &stubAdvisor{advice: "多出门走走"}
	svc := newAdviceFixture(entries, enricher, &fakeAdviceStore{}, advisor)

	got, err := svc.AdviseEntry(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "多出门走走", got)

	require.Len(t, advisor.inputs, 1)
	assert.Contains(t, advisor.inputs[0][0], "joy")
	assert.Contains(t, advisor.inputs[0][2], "散步")
}

func TestAdviseEntryUnknownEntry(t *testing.T) {
	svc := newAdviceFixture(&fakeEntryStore{}, &fakeEnricher{}, &fakeAdviceStore{}, &stubAdvisor{})

	_, err := svc.AdviseEntry(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
