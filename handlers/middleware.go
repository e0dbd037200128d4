package handlers

import (
	"context"
	"net/http"
	"strings"

	"digital_diary/models"
	"digital_diary/services"
	"digital_diary/utils"
)

type contextKey string

const userIDKey contextKey = "user_id"

// RequireAuth 校验Bearer访问令牌并把用户ID放入请求上下文。
// 签发时间早于用户最近登出时间的令牌一律拒绝。
func RequireAuth(tokens *utils.TokenManager, users *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				utils.WriteErrorResponse(w, models.CodeInvalidToken, map[string]interface{}{})
				return
			}

			identity, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "), utils.TokenTypeAccess)
			if err != nil {
				utils.WriteErrorResponse(w, models.CodeInvalidToken, map[string]interface{}{})
				return
			}

			user, err := users.GetUser(identity.UserID)
			if err != nil {
				utils.WriteErrorResponse(w, models.CodeInvalidToken, map[string]interface{}{})
				return
			}
			if user.LastLogout != nil && identity.IssuedAt.Before(*user.LastLogout) {
				utils.WriteErrorResponse(w, models.CodeInvalidToken, map[string]interface{}{})
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, identity.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext 取出鉴权中间件写入的用户ID
func UserIDFromContext(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}
