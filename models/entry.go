package models

import "time"

// Entry 日记条目，创建时间不可变，是所有时间聚合的分桶依据
type Entry struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Context   string    `db:"context" json:"context"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AnalysisText 拼接送入抽取器的完整文本
func (e *Entry) AnalysisText() string {
	return e.Title + "\n" + e.Context
}
