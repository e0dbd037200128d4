package services

import (
	"fmt"
	"time"

	"digital_diary/logger"
	"digital_diary/models"
	"digital_diary/utils"
)

// UserService 账号注册、登录与令牌管理
type UserService struct {
	users  UserStore
	tokens *utils.TokenManager
}

func NewUserService(users UserStore, tokens *utils.TokenManager) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// RegisterInput 注册所需的全部字段，handler层已做必填校验
type RegisterInput struct {
	Firstname   string
	Lastname    string
	Username    string
	Email       string
	Password    string
	DateOfBirth time.Time
	Gender      string
}

// Register 注册新用户，用户名和邮箱均要求唯一
func (s *UserService) Register(in RegisterInput) (int64, error) {
	taken, err := s.users.UsernameOrEmailExists(in.Username, in.Email)
	if err != nil {
		return 0, fmt.Errorf("查询用户失败: %w", err)
	}
	if taken {
		return 0, ErrUserExists
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return 0, fmt.Errorf("密码哈希失败: %w", err)
	}

	id, err := s.users.CreateUser(&models.User{
		Firstname:   in.Firstname,
		Lastname:    in.Lastname,
		Username:    in.Username,
		Email:       in.Email,
		Password:    hashed,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
	})
	if err != nil {
		return 0, fmt.Errorf("创建用户失败: %w", err)
	}

	logger.Info("新用户注册成功", "user_id", id, "username", in.Username)
	return id, nil
}

// Login 用户名或邮箱登录，成功后返回访问/刷新令牌对
func (s *UserService) Login(identifier, password string) (*models.TokenPair, error) {
	user, err := s.users.GetUserByUsername(identifier)
	if err != nil {
		if !utils.IsSQLNoRowsError(err) {
			return nil, fmt.Errorf("查询用户失败: %w", err)
		}
		user, err = s.users.GetUserByEmail(identifier)
		if err != nil {
			if utils.IsSQLNoRowsError(err) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("查询用户失败: %w", err)
		}
	}

	if !utils.CheckPassword(user.Password, password) {
		logger.Warn("登录密码错误", "user_id", user.ID)
		return nil, ErrWrongPassword
	}

	return s.issueTokenPair(user.ID)
}

// Refresh 用刷新令牌换发新的令牌对。
// 签发时间早于最近登出时间的刷新令牌一律拒绝。
func (s *UserService) Refresh(refreshToken string) (*models.TokenPair, error) {
	identity, err := s.tokens.ValidateToken(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUserByID(identity.UserID)
	if err != nil {
		if utils.IsSQLNoRowsError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if user.LastLogout != nil && identity.IssuedAt.Before(*user.LastLogout) {
		return nil, ErrInvalidToken
	}

	return s.issueTokenPair(user.ID)
}

// Logout 记录登出时间，使此前签发的所有令牌失效
func (s *UserService) Logout(userID int64) error {
	if err := s.users.UpdateLastLogout(userID, time.Now()); err != nil {
		return fmt.Errorf("更新登出时间失败: %w", err)
	}
	logger.Info("用户登出", "user_id", userID)
	return nil
}

// GetUserInfo 查询可对外展示的用户信息
func (s *UserService) GetUserInfo(userID int64) (*models.UserInfo, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if utils.IsSQLNoRowsError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	info := user.Info()
	return &info, nil
}

// GetUser 查询完整用户记录，鉴权中间件校验令牌时使用
func (s *UserService) GetUser(userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if utils.IsSQLNoRowsError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return user, nil
}

func (s *UserService) issueTokenPair(userID int64) (*models.TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{Access: access, Refresh: refresh}, nil
}
