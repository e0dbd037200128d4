package services

import (
	"strings"

	"digital_diary/utils"
)

// SanitizeFunc 单个文本清洗步骤
type SanitizeFunc func(string) string

// Sanitizer 日记入库前的文本清洗流水线，各步骤按注册顺序执行
type Sanitizer struct {
	steps []SanitizeFunc
}

func NewSanitizer(steps ...SanitizeFunc) *Sanitizer {
	return &Sanitizer{steps: steps}
}

// DefaultSanitizer 默认流水线：去首尾空白、过滤特殊符号、屏蔽敏感词
func DefaultSanitizer() *Sanitizer {
	return NewSanitizer(
		strings.TrimSpace,
		utils.FilterSpecialSymbols,
		MaskProfanity,
	)
}

func (s *Sanitizer) Sanitize(text string) string {
	for _, step := range s.steps {
		text = step(text)
	}
	return text
}

// 敏感词表，命中后整词替换为等长星号
var profanityWords = []string{
	"傻逼", "混蛋", "去死", "废物",
	"fuck", "shit", "bitch",
}

// MaskProfanity 屏蔽文本中的敏感词
func MaskProfanity(text string) string {
	lower := strings.ToLower(text)
	for _, word := range profanityWords {
		for {
			idx := strings.Index(lower, word)
			if idx < 0 {
				break
			}
			mask := strings.Repeat("*", len([]rune(word)))
			// 注意按字节定位，按rune替换
			text = text[:idx] + mask + text[idx+len(word):]
			lower = lower[:idx] + mask + lower[idx+len(word):]
		}
	}
	return text
}
