package models

import "time"

// Advice 按周/月/年生成的建议文本，周建议会落库复用
type Advice struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Advice    string    `db:"advice" json:"advice"`
	Week      *int      `db:"week" json:"week,omitempty"`
	Month     *int      `db:"month" json:"month,omitempty"`
	Year      int       `db:"year" json:"year"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
