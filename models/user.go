package models

import "time"

type User struct {
	ID          int64      `db:"id" json:"id"`
	Firstname   string     `db:"firstname" json:"firstname"`
	Lastname    string     `db:"lastname" json:"lastname"`
	Username    string     `db:"username" json:"username"`
	Email       string     `db:"email" json:"email"`
	Password    string     `db:"password" json:"-"` // bcrypt哈希，永不下发
	DateOfBirth time.Time  `db:"date_of_birth" json:"date_of_birth"`
	Gender      string     `db:"gender" json:"gender"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	LastLogout  *time.Time `db:"last_logout" json:"-"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// UserInfo 用户信息响应结构
type UserInfo struct {
	Firstname   string    `json:"firstname"`
	Lastname    string    `json:"lastname"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
}

// Info 提取可对外展示的用户信息
func (u *User) Info() UserInfo {
	return UserInfo{
		Firstname:   u.Firstname,
		Lastname:    u.Lastname,
		Username:    u.Username,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
	}
}
