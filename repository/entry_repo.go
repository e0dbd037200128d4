package repository

import (
	"time"

	"digital_diary/db"
	"digital_diary/models"
)

// EntryRepo 日记条目表访问
type EntryRepo struct{}

const entryColumns = `id, user_id, title, context, created_at, updated_at`

// GetEntryByID 带用户归属校验的单条查询
func (EntryRepo) GetEntryByID(entryID, userID int64) (*models.Entry, error) {
	e := &models.Entry{}
	err := db.DB.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE id=? AND user_id=?`, entryID, userID).
		Scan(&e.ID, &e.UserID, &e.Title, &e.Context, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (EntryRepo) ListEntriesByUser(userID int64) ([]models.Entry, error) {
	return queryEntries(`SELECT `+entryColumns+` FROM entries WHERE user_id=? ORDER BY created_at ASC, id ASC`, userID)
}

// ListEntriesByDateRange 时间范围查询，边界日均包含。
// 按创建时间升序返回，同一天内后写的日记排在后面，聚合时覆盖语义才是确定的。
func (EntryRepo) ListEntriesByDateRange(userID int64, start, end time.Time) ([]models.Entry, error) {
	return queryEntries(`
        SELECT `+entryColumns+` FROM entries
        WHERE user_id=? AND created_at BETWEEN ? AND ?
        ORDER BY created_at ASC, id ASC
    `, userID, start, end)
}

func (EntryRepo) ListEntryTitles(userID int64) ([]string, error) {
	return queryStrings(`SELECT title FROM entries WHERE user_id=? ORDER BY created_at ASC, id ASC`, userID)
}

func (EntryRepo) CreateEntry(e *models.Entry) (int64, error) {
	res, err := db.DB.Exec(`
        INSERT INTO entries (user_id, title, context, created_at, updated_at)
        VALUES (?, ?, ?, NOW(), NOW())
    `, e.UserID, e.Title, e.Context)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// AppendEntryContext 向日记追加内容，同一事务内删除旧的富化结果。
// 文本变了，缓存的情绪/性格/事件结果就不再成立，下次访问时重新抽取。
func (EntryRepo) AppendEntryContext(entryID, userID int64, addition string) error {
	tx, err := db.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
        UPDATE entries SET context=CONCAT(context, ?), updated_at=NOW()
        WHERE id=? AND user_id=?
    `, addition, entryID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoSuchEntry
	}

	for _, table := range []string{"emotions", "character_traits", "events"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE entry_id=?`, entryID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListUnenrichedEntries 查找近lookbackDays天内缺少任一富化结果的日记，供夜间预热任务使用
func (EntryRepo) ListUnenrichedEntries(lookbackDays int) ([]models.Entry, error) {
	since := time.Now().AddDate(0, 0, -lookbackDays)
	return queryEntries(`
        SELECT e.id, e.user_id, e.title, e.context, e.created_at, e.updated_at
        FROM entries e
        LEFT JOIN emotions em ON em.entry_id = e.id
        LEFT JOIN character_traits ct ON ct.entry_id = e.id
        WHERE e.created_at >= ? AND (em.id IS NULL OR ct.id IS NULL)
        ORDER BY e.created_at ASC
    `, since)
}

func queryEntries(query string, args ...interface{}) ([]models.Entry, error) {
	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Context, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
