package repository

import (
	"database/sql"

	"digital_diary/db"
	"digital_diary/models"
)

// AdviceRepo 建议表访问，目前只有周建议会落库复用
type AdviceRepo struct{}

func (AdviceRepo) GetWeekAdvice(userID int64, week, year int) (*models.Advice, error) {
	a := &models.Advice{}
	var month sql.NullInt64
	var weekVal sql.NullInt64
	err := db.DB.QueryRow(`
        SELECT id, user_id, advice, week, month, year, created_at
        FROM advice WHERE user_id=? AND week=? AND year=?
        ORDER BY created_at DESC LIMIT 1
    `, userID, week, year).Scan(&a.ID, &a.UserID, &a.Advice, &weekVal, &month, &a.Year, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if weekVal.Valid {
		w := int(weekVal.Int64)
		a.Week = &w
	}
	if month.Valid {
		m := int(month.Int64)
		a.Month = &m
	}
	return a, nil
}

func (AdviceRepo) InsertAdvice(a *models.Advice) (int64, error) {
	res, err := db.DB.Exec(`
        INSERT INTO advice (user_id, advice, week, month, year, created_at)
        VALUES (?, ?, ?, ?, ?, NOW())
    `, a.UserID, a.Advice, a.Week, a.Month, a.Year)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
