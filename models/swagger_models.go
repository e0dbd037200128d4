package models

// APIResponse 通用API响应
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// TokenPair 注册/登录/刷新返回的令牌对
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterRequest 用户注册请求体
type RegisterRequest struct {
	Firstname   string `json:"firstname" example:"三"`
	Lastname    string `json:"lastname" example:"张"`
	Username    string `json:"username" example:"zhangsan"`
	Email       string `json:"email" example:"zhangsan@example.com"`
	Password    string `json:"password" example:"secret123"`
	DateOfBirth string `json:"date_of_birth" example:"1995-06-15"`
	Gender      string `json:"gender" example:"male"`
}

// LoginRequest 登录请求体，identifier可为用户名或邮箱
type LoginRequest struct {
	Identifier string `json:"identifier" example:"zhangsan"`
	Password   string `json:"password" example:"secret123"`
}

// CreateEntryRequest 创建日记请求体
type CreateEntryRequest struct {
	Title   string `json:"title" example:"今天的心情"`
	Context string `json:"context" example:"今天和朋友去了公园……"`
}

// AppendEntryRequest 追加日记内容请求体
type AppendEntryRequest struct {
	Context string `json:"context" example:"晚上又想到一些事……"`
}

// WeekRequest 按周查询请求体
type WeekRequest struct {
	Week int `json:"week" example:"23"`
	Year int `json:"year" example:"2024"`
}

// MonthRequest 按月查询请求体
type MonthRequest struct {
	Month int `json:"month" example:"6"`
	Year  int `json:"year" example:"2024"`
}

// YearRequest 按年查询请求体
type YearRequest struct {
	Year int `json:"year" example:"2024"`
}
