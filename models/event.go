package models

import "encoding/json"

// Event 从日记文本中抽取的单个事件，一篇日记可有0到多个。
// 各字段在数据库中以JSON字符串数组存储。
type Event struct {
	ID            int64    `db:"id" json:"id"`
	EntryID       int64    `db:"entry_id" json:"entry_id"`
	Characters    []string `db:"characters" json:"characters"`
	Actions       []string `db:"actions" json:"actions"`
	Locations     []string `db:"locations" json:"locations"`
	Times         []string `db:"times" json:"times"`
	Objects       []string `db:"objects" json:"objects"`
	Subjects      []string `db:"subjects" json:"subjects"`
	Adjectives    []string `db:"adjectives" json:"adjectives"`
	Adverbs       []string `db:"adverbs" json:"adverbs"`
	Topics        []string `db:"topics" json:"topics"`
	Organizations []string `db:"organizations" json:"organizations"`
	SubEvents     []string `db:"sub_events" json:"sub_events"`
}

// fieldMap 按固定键名展开各字段，空切片归一化为[]
func (e *Event) fieldMap() map[string][]string {
	norm := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	return map[string][]string{
		"characters":    norm(e.Characters),
		"actions":       norm(e.Actions),
		"locations":     norm(e.Locations),
		"times":         norm(e.Times),
		"objects":       norm(e.Objects),
		"subjects":      norm(e.Subjects),
		"adjectives":    norm(e.Adjectives),
		"adverbs":       norm(e.Adverbs),
		"topics":        norm(e.Topics),
		"organizations": norm(e.Organizations),
		"sub_events":    norm(e.SubEvents),
	}
}

// Describe 输出事件的字符串表示，按天聚合时直接拼接该表示
func (e *Event) Describe() string {
	b, err := json.Marshal(e.fieldMap())
	if err != nil {
		return "{}"
	}
	return string(b)
}

// IsEmpty 所有字段均为空时视为无事件
func (e *Event) IsEmpty() bool {
	for _, vals := range e.fieldMap() {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}
