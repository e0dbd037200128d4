package repository

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"digital_diary/db"
)

// newMockDB 把全局连接替换为sqlmock，测试结束时还原
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	orig := db.DB
	db.DB = mockDB
	t.Cleanup(func() {
		db.DB = orig
		mockDB.Close()
	})
	return mock
}
