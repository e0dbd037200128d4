package repository

import (
	"database/sql"
	"errors"
	"strings"

	"digital_diary/db"
)

// ErrNoSuchEntry 更新目标日记不存在或不属于该用户
var ErrNoSuchEntry = errors.New("entry not found")

// =====================
// 通用工具函数
// =====================

// queryStrings 执行查询并返回字符串结果列表
func queryStrings(query string, args ...interface{}) ([]string, error) {
	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]string, 0)
	for rows.Next() {
		var val sql.NullString
		if err := rows.Scan(&val); err == nil && val.Valid {
			s := strings.TrimSpace(val.String)
			if s != "" {
				results = append(results, s)
			}
		}
	}
	return results, nil
}

// exists 执行 COUNT(1) 查询并返回是否存在数据
func exists(query string, args ...interface{}) (bool, error) {
	var count int
	err := db.DB.QueryRow(query, args...).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
