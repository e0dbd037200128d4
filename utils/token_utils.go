package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenManager 负责HS256访问/刷新令牌的签发与校验
type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager 创建令牌管理器
func NewTokenManager(secret, issuer string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// tokenClaims 在标准声明上补充令牌类型
type tokenClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// TokenIdentity 令牌校验后的身份信息
type TokenIdentity struct {
	UserID   int64
	IssuedAt time.Time
}

func (m *TokenManager) generate(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("签发令牌失败: %w", err)
	}
	return signed, nil
}

// GenerateAccessToken 签发访问令牌
func (m *TokenManager) GenerateAccessToken(userID int64) (string, error) {
	return m.generate(userID, TokenTypeAccess, m.accessTTL)
}

// GenerateRefreshToken 签发刷新令牌
func (m *TokenManager) GenerateRefreshToken(userID int64) (string, error) {
	return m.generate(userID, TokenTypeRefresh, m.refreshTTL)
}

// ValidateToken 校验令牌并返回身份信息，tokenType不匹配时视为无效
func (m *TokenManager) ValidateToken(tokenString, tokenType string) (*TokenIdentity, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("令牌为空")
	}

	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("不支持的签名算法: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("解析令牌失败: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("令牌声明无效")
	}
	if claims.Issuer != m.issuer {
		return nil, fmt.Errorf("令牌签发方不匹配")
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("令牌类型不匹配: 期望%s", tokenType)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("令牌主体无效: %w", err)
	}

	identity := &TokenIdentity{UserID: userID}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	return identity, nil
}
