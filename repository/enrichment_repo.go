package repository

import (
	"database/sql"
	"encoding/json"

	"digital_diary/db"
	"digital_diary/logger"
	"digital_diary/models"
)

// EnrichmentRepo 富化结果（情绪/性格/事件）表访问
type EnrichmentRepo struct{}

func (EnrichmentRepo) GetEmotionByEntry(entryID int64) (*models.Emotion, error) {
	e := &models.Emotion{}
	err := db.DB.QueryRow(`
        SELECT id, entry_id, love, joy, sadness, anger, fear, surprise
        FROM emotions WHERE entry_id=?
    `, entryID).Scan(&e.ID, &e.EntryID, &e.Love, &e.Joy, &e.Sadness, &e.Anger, &e.Fear, &e.Surprise)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// SaveEmotion 落库情绪结果。唯一键冲突说明并发请求已经写入，
// 此时放弃本次结果并返回先写入的那份。
func (r EnrichmentRepo) SaveEmotion(e *models.Emotion) (*models.Emotion, error) {
	_, err := db.DB.Exec(`
        INSERT INTO emotions (entry_id, love, joy, sadness, anger, fear, surprise)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE id=id
    `, e.EntryID, e.Love, e.Joy, e.Sadness, e.Anger, e.Fear, e.Surprise)
	if err != nil {
		return nil, err
	}
	return r.GetEmotionByEntry(e.EntryID)
}

func (EnrichmentRepo) GetCharacterByEntry(entryID int64) (*models.CharacterTrait, error) {
	c := &models.CharacterTrait{}
	err := db.DB.QueryRow(`
        SELECT id, entry_id, agreableness, conscientiousness, extraversion, neuroticism, openness, mbti_type
        FROM character_traits WHERE entry_id=?
    `, entryID).Scan(&c.ID, &c.EntryID, &c.Agreableness, &c.Conscientiousness,
		&c.Extraversion, &c.Neuroticism, &c.Openness, &c.MBTIType)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r EnrichmentRepo) SaveCharacter(c *models.CharacterTrait) (*models.CharacterTrait, error) {
	_, err := db.DB.Exec(`
        INSERT INTO character_traits (entry_id, agreableness, conscientiousness, extraversion, neuroticism, openness, mbti_type)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE id=id
    `, c.EntryID, c.Agreableness, c.Conscientiousness, c.Extraversion, c.Neuroticism, c.Openness, c.MBTIType)
	if err != nil {
		return nil, err
	}
	return r.GetCharacterByEntry(c.EntryID)
}

func (EnrichmentRepo) ListEventsByEntry(entryID int64) ([]models.Event, error) {
	rows, err := db.DB.Query(`
        SELECT id, entry_id, characters, actions, locations, times, objects,
               subjects, adjectives, adverbs, topics, organizations, sub_events
        FROM events WHERE entry_id=? ORDER BY id ASC
    `, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// SaveEvents 落库事件结果。事件表没有唯一键可依赖（一篇日记多行），
// 并发安全靠事务内先锁住日记行再检查是否已有结果来保证。
func (EnrichmentRepo) SaveEvents(entryID int64, events []models.Event) ([]models.Event, error) {
	tx, err := db.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var lockedID int64
	if err := tx.QueryRow(`SELECT id FROM entries WHERE id=? FOR UPDATE`, entryID).Scan(&lockedID); err != nil {
		return nil, err
	}

	rows, err := tx.Query(`
        SELECT id, entry_id, characters, actions, locations, times, objects,
               subjects, adjectives, adverbs, topics, organizations, sub_events
        FROM events WHERE entry_id=? ORDER BY id ASC
    `, entryID)
	if err != nil {
		return nil, err
	}
	existing, err := scanEvents(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		// 并发请求已经写入，放弃本次结果
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		return existing, nil
	}

	saved := make([]models.Event, 0, len(events))
	for _, ev := range events {
		ev.EntryID = entryID
		res, err := tx.Exec(`
            INSERT INTO events (entry_id, characters, actions, locations, times, objects,
                                subjects, adjectives, adverbs, topics, organizations, sub_events)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        `, entryID,
			marshalList(ev.Characters), marshalList(ev.Actions), marshalList(ev.Locations),
			marshalList(ev.Times), marshalList(ev.Objects), marshalList(ev.Subjects),
			marshalList(ev.Adjectives), marshalList(ev.Adverbs), marshalList(ev.Topics),
			marshalList(ev.Organizations), marshalList(ev.SubEvents))
		if err != nil {
			return nil, err
		}
		ev.ID, _ = res.LastInsertId()
		saved = append(saved, ev)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return saved, nil
}

func scanEvents(rows *sql.Rows) ([]models.Event, error) {
	events := make([]models.Event, 0)
	for rows.Next() {
		var ev models.Event
		var characters, actions, locations, times, objects string
		var subjects, adjectives, adverbs, topics, organizations, subEvents string
		if err := rows.Scan(&ev.ID, &ev.EntryID, &characters, &actions, &locations, &times, &objects,
			&subjects, &adjectives, &adverbs, &topics, &organizations, &subEvents); err != nil {
			return nil, err
		}
		ev.Characters = unmarshalList(characters)
		ev.Actions = unmarshalList(actions)
		ev.Locations = unmarshalList(locations)
		ev.Times = unmarshalList(times)
		ev.Objects = unmarshalList(objects)
		ev.Subjects = unmarshalList(subjects)
		ev.Adjectives = unmarshalList(adjectives)
		ev.Adverbs = unmarshalList(adverbs)
		ev.Topics = unmarshalList(topics)
		ev.Organizations = unmarshalList(organizations)
		ev.SubEvents = unmarshalList(subEvents)
		events = append(events, ev)
	}
	return events, rows.Err()
}

func marshalList(vals []string) string {
	if vals == nil {
		vals = []string{}
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalList(raw string) []string {
	vals := make([]string, 0)
	if raw == "" {
		return vals
	}
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		logger.Warn("事件字段JSON解析失败", "raw", raw, "error", err)
		return []string{}
	}
	return vals
}
