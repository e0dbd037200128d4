package handlers

import (
	"net/http"
	"time"

	"digital_diary/models"
	"digital_diary/services"
	"digital_diary/utils"
)

// UserHandler 账号相关接口
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register godoc
// @Summary 用户注册
// @Description 注册新用户，用户名和邮箱均要求唯一
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "注册信息"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "用户已存在或参数错误"
// @Router /api/user/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !utils.DecodeJSONBody(w, r, &req) {
		return
	}
	for name, value := range map[string]string{
		"firstname": req.Firstname,
		"lastname":  req.Lastname,
		"username":  req.Username,
		"email":     req.Email,
		"password":  req.Password,
		"gender":    req.Gender,
	} {
		if !utils.ValidateRequiredString(w, name, value) {
			return
		}
	}

	dob, err := time.ParseInLocation("2006-01-02", req.DateOfBirth, time.Local)
	if err != nil {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{"param": "date_of_birth"})
		return
	}

	id, err := h.users.Register(services.RegisterInput{
		Firstname:   req.Firstname,
		Lastname:    req.Lastname,
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: dob,
		Gender:      req.Gender,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{"user_id": id})
}

// Login godoc
// @Summary 用户登录
// @Description 用户名或邮箱加密码登录，返回访问/刷新令牌对
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "登录信息"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "用户不存在或密码错误"
// @Router /api/user/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !utils.DecodeJSONBody(w, r, &req) {
		return
	}
	if !utils.ValidateRequiredString(w, "identifier", req.Identifier) ||
		!utils.ValidateRequiredString(w, "password", req.Password) {
		return
	}

	pair, err := h.users.Login(req.Identifier, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, pair)
}

// Refresh godoc
// @Summary 刷新令牌
// @Description 用刷新令牌换发新的访问/刷新令牌对
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body map[string]string true "刷新令牌 {refresh: ...}"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "令牌无效"
// @Router /api/user/refresh [post]
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if !utils.DecodeJSONBody(w, r, &req) {
		return
	}
	if !utils.ValidateRequiredString(w, "refresh", req.Refresh) {
		return
	}

	pair, err := h.users.Refresh(req.Refresh)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, pair)
}

// Logout godoc
// @Summary 用户登出
// @Description 记录登出时间，使此前签发的所有令牌失效
// @Tags 账号
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/user/logout [post]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Logout(UserIDFromContext(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{})
}

// Info godoc
// @Summary 获取当前用户信息
// @Description 获取当前登录用户的基本信息
// @Tags 账号
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/user/info [get]
func (h *UserHandler) Info(w http.ResponseWriter, r *http.Request) {
	info, err := h.users.GetUserInfo(UserIDFromContext(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, info)
}
