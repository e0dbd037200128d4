package models

// 响应码定义
const (
	// 成功
	CodeSuccess = 0

	// 客户端错误 (1000-1999)
	CodeInvalidParams = 1000 // 无效的参数
	CodeMissingParams = 1001 // 缺少必要参数
	CodeUserNotFound  = 1002 // 用户不存在
	CodeEntryNotFound = 1003 // 日记不存在
	CodeInvalidPeriod = 1004 // 请求的时间段早于账号创建时间
	CodeUserExists    = 1005 // 用户已存在
	CodeWrongPassword = 1006 // 密码错误
	CodeInvalidToken  = 1007 // 令牌无效或已过期
	CodeNoAdviceData  = 1008 // 没有建议数据

	// 服务端错误 (2000-2999)
	CodeServerError     = 2000 // 服务器内部错误
	CodeDatabaseError   = 2001 // 数据库错误
	CodeExtractionError = 2002 // 模型抽取错误（可重试）
)

// 错误码对应的消息
var CodeMessages = map[int]string{
	CodeSuccess:         "success",
	CodeInvalidParams:   "无效的参数",
	CodeMissingParams:   "缺少必要参数",
	CodeUserNotFound:    "用户不存在",
	CodeEntryNotFound:   "日记不存在",
	CodeInvalidPeriod:   "请求的时间段早于账号创建时间",
	CodeUserExists:      "用户已存在",
	CodeWrongPassword:   "密码错误",
	CodeInvalidToken:    "令牌无效或已过期",
	CodeNoAdviceData:    "没有建议数据",
	CodeServerError:     "服务器内部错误",
	CodeDatabaseError:   "数据库错误",
	CodeExtractionError: "模型抽取错误，请稍后重试",
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Code:    CodeSuccess,
		Message: CodeMessages[CodeSuccess],
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, data interface{}) APIResponse {
	message, exists := CodeMessages[code]
	if !exists {
		message = "未知错误"
	}
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewCustomErrorResponse 创建自定义错误消息的响应
func NewCustomErrorResponse(code int, message string, data interface{}) APIResponse {
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
