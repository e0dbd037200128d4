package repository

import (
	"database/sql"
	"time"

	"digital_diary/db"
	"digital_diary/models"
)

// UserRepo 用户表访问
type UserRepo struct{}

const userColumns = `id, firstname, lastname, username, email, password, date_of_birth, gender, is_active, last_logout, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var lastLogout sql.NullTime
	err := row.Scan(&u.ID, &u.Firstname, &u.Lastname, &u.Username, &u.Email, &u.Password,
		&u.DateOfBirth, &u.Gender, &u.IsActive, &lastLogout, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastLogout.Valid {
		u.LastLogout = &lastLogout.Time
	}
	return u, nil
}

func (UserRepo) GetUserByID(id int64) (*models.User, error) {
	row := db.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=?`, id)
	return scanUser(row)
}

func (UserRepo) GetUserByUsername(username string) (*models.User, error) {
	row := db.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE username=?`, username)
	return scanUser(row)
}

func (UserRepo) GetUserByEmail(email string) (*models.User, error) {
	row := db.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email=?`, email)
	return scanUser(row)
}

// UsernameOrEmailExists 注册前的唯一性检查
func (UserRepo) UsernameOrEmailExists(username, email string) (bool, error) {
	return exists(`SELECT COUNT(1) FROM users WHERE username=? OR email=?`, username, email)
}

func (UserRepo) CreateUser(u *models.User) (int64, error) {
	res, err := db.DB.Exec(`
        INSERT INTO users (firstname, lastname, username, email, password, date_of_birth, gender, is_active, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, 1, NOW(), NOW())
    `, u.Firstname, u.Lastname, u.Username, u.Email, u.Password, u.DateOfBirth, u.Gender)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateLastLogout 记录登出时间，早于该时间签发的令牌全部失效
func (UserRepo) UpdateLastLogout(id int64, t time.Time) error {
	_, err := db.DB.Exec(`UPDATE users SET last_logout=?, updated_at=NOW() WHERE id=?`, t, id)
	return err
}
