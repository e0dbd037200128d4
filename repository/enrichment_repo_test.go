package repository

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital_diary/models"
)

var emotionRowColumns = []string{"id", "entry_id", "love", "joy", "sadness", "anger", "fear", "surprise"}

const eventSelectPattern = `SELECT id, entry_id, characters, actions, locations, times, objects,\s+subjects, adjectives, adverbs, topics, organizations, sub_events\s+FROM events WHERE entry_id=\?`

var eventRowColumns = []string{"id", "entry_id", "characters", "actions", "locations", "times", "objects",
	"subjects", "adjectives", "adverbs", "topics", "organizations", "sub_events"}

func TestSaveEmotionReturnsFirstWrite(t *testing.T) {
	mock := newMockDB(t)

	// 唯一键冲突时INSERT被忽略，回读返回并发请求先写入的那份
	mock.ExpectExec(`INSERT INTO emotions`).
		WithArgs(int64(3), false, true, false, false, false, false).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM emotions WHERE entry_id=\?`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(emotionRowColumns).
			AddRow(int64(11), int64(3), true, false, false, false, false, false))

	saved, err := EnrichmentRepo{}.SaveEmotion(&models.Emotion{EntryID: 3, Joy: true})
	require.NoError(t, err)

	assert.Equal(t, int64(11), saved.ID)
	assert.True(t, saved.Love)
	assert.False(t, saved.Joy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCharacterRoundTrip(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO character_traits`).
		WithArgs(int64(3), 50.0, 60.0, 40.0, 30.0, 70.0, "ENTP").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(`SELECT .+ FROM character_traits WHERE entry_id=\?`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "entry_id", "agreableness", "conscientiousness", "extraversion", "neuroticism", "openness", "mbti_type",
		}).AddRow(int64(5), int64(3), 50.0, 60.0, 40.0, 30.0, 70.0, "ENTP"))

	saved, err := EnrichmentRepo{}.SaveCharacter(&models.CharacterTrait{
		EntryID:           3,
		Agreableness:      50,
		Conscientiousness: 60,
		Extraversion:      40,
		Neuroticism:       30,
		Openness:          70,
		MBTIType:          "ENTP",
	})
	require.NoError(t, err)
	assert.Equal(t, "ENTP", saved.MBTIType)
	assert.Equal(t, int64(5), saved.ID)
}

func TestSaveEventsInsertsWhenNoneExist(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM entries WHERE id=\? FOR UPDATE`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery(eventSelectPattern).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(eventRowColumns))
	mock.ExpectExec(`INSERT INTO events`).
		WithArgs(int64(3),
			`["小明"]`, `["散步"]`, `["公园"]`, `[]`, `[]`,
			`[]`, `[]`, `[]`, `["休闲"]`, `[]`, `[]`).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectCommit()

	saved, err := EnrichmentRepo{}.SaveEvents(3, []models.Event{{
		Characters: []string{"小明"},
		Actions:    []string{"散步"},
		Locations:  []string{"公园"},
		Topics:     []string{"休闲"},
	}})
	require.NoError(t, err)

	require.Len(t, saved, 1)
	assert.Equal(t, int64(21), saved[0].ID)
	assert.Equal(t, int64(3), saved[0].EntryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEventsKeepsExistingOnConcurrentWrite(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM entries WHERE id=\? FOR UPDATE`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery(eventSelectPattern).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow(int64(8), int64(3), `["小红"]`, `[]`, `[]`, `[]`, `[]`, `[]`, `[]`, `[]`, `[]`, `[]`, `[]`))
	mock.ExpectCommit()

	saved, err := EnrichmentRepo{}.SaveEvents(3, []models.Event{{Characters: []string{"小明"}}})
	require.NoError(t, err)

	// 已有并发写入的结果，放弃本次结果
	require.Len(t, saved, 1)
	assert.Equal(t, []string{"小红"}, saved[0].Characters)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnmarshalListToleratesGarbage(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, unmarshalList(`["a","b"]`))
	assert.Equal(t, []string{}, unmarshalList(""))
	assert.Equal(t, []string{}, unmarshalList("not json"))
}
