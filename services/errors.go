package services

import "errors"

// 服务层错误哨兵，handler依据错误类型映射响应码
var (
	ErrUserNotFound  = errors.New("用户不存在")
	ErrEntryNotFound = errors.New("日记不存在")
	ErrInvalidPeriod = errors.New("请求的时间段早于账号创建时间")
	ErrUserExists    = errors.New("用户名或邮箱已被注册")
	ErrWrongPassword = errors.New("密码错误")
	ErrInvalidToken  = errors.New("令牌无效或已过期")
	ErrNoAdviceData  = errors.New("该时间段内没有日记，无法生成建议")
	ErrExtraction    = errors.New("模型抽取失败")
)
