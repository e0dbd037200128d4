package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital_diary/models"
)

func TestCreateEntrySanitizesInput(t *testing.T) {
	store := &fakeEntryStore{}
	svc := NewEntryService(store, DefaultSanitizer())

	entry, err := svc.CreateEntry(1, "  今天☀  ", "你这个傻逼")
	require.NoError(t, err)

	assert.Equal(t, "今天", entry.Title)
	assert.Equal(t, "你这个**", entry.Context)
	assert.Equal(t, int64(1), entry.UserID)
}

func TestAppendContextPrependsNewline(t *testing.T) {
	store := &fakeEntryStore{entries: []models.Entry{
		{ID: 1, UserID: 1, Title: "第一篇", Context: "上午的事", CreatedAt: time.Now()},
	}}
	svc := NewEntryService(store, DefaultSanitizer())

	entry, err := svc.AppendContext(1, 1, "  下午的事  ")
	require.NoError(t, err)

	assert.Equal(t, "上午的事\n下午的事", entry.Context)
}

func TestAppendContextUnknownEntry(t *testing.T) {
	svc := NewEntryService(&fakeEntryStore{}, DefaultSanitizer())

	_, err := svc.AppendContext(42, 1, "内容")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestAppendContextWrongOwner(t *testing.T) {
	store := &fakeEntryStore{entries: []models.Entry{
		{ID: 1, UserID: 2, Context: "别人的日记"},
	}}
	svc := NewEntryService(store, DefaultSanitizer())

	_, err := svc.AppendContext(1, 1, "内容")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestGetEntryNotFound(t *testing.T) {
	svc := NewEntryService(&fakeEntryStore{}, DefaultSanitizer())

	_, err := svc.GetEntry(9, 1)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestListTitlesOnlyOwnEntries(t *testing.T) {
	store := &fakeEntryStore{entries: []models.Entry{
		{ID: 1, UserID: 1, Title: "我的"},
		{ID: 2, UserID: 2, Title: "别人的"},
	}}
	svc := NewEntryService(store, DefaultSanitizer())

	titles, err := svc.ListTitles(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"我的"}, titles)
}
