package utils

import "strings"

const (
	// ChunkSize 分块长度（按rune计）
	ChunkSize = 128
	// ChunkTailMin 末尾残块低于该长度时视为信号不足，直接丢弃
	ChunkTailMin = 100
)

// ChunkText 将文本切成固定长度的分块送入模型。
// 对起始于i的分块：i+128<L取整块；否则残块长度>100时整段保留，不足则丢弃。
// 按rune切分，避免把多字节字符切坏。
func ChunkText(text string) []string {
	runes := []rune(text)
	length := len(runes)

	chunks := make([]string, 0, length/ChunkSize+1)
	for i := 0; i < length; i += ChunkSize {
		if i+ChunkSize < length {
			chunks = append(chunks, string(runes[i:i+ChunkSize]))
		} else if length-i > ChunkTailMin {
			chunks = append(chunks, string(runes[i:]))
		}
		// 其余情况：末尾残块太短，丢弃
	}
	return chunks
}

// DeduplicateSlice 去重字符串切片，保持首次出现的顺序
func DeduplicateSlice(input []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)

	for _, val := range input {
		val = strings.TrimSpace(val)
		if val != "" && !seen[val] {
			result = append(result, val)
			seen[val] = true
		}
	}

	return result
}

// FilterSpecialSymbols 过滤文本中的特殊符号，只保留常见标点符号和正常内容
func FilterSpecialSymbols(text string) string {
	commonPunctuation := map[rune]bool{
		'，': true, '。': true, '！': true, '？': true, '：': true, '；': true,
		'、': true, '（': true, '）': true,
		'【': true, '】': true, '《': true, '》': true, '—': true,
		',': true, '.': true, '!': true, '?': true, ':': true, ';': true,
		'"': true, '\'': true, '(': true, ')': true, '[': true, ']': true,
		'{': true, '}': true, '<': true, '>': true, '-': true, '_': true,
		'+': true, '=': true, '/': true, '\\': true, '|': true, ' ': true,
		'\n': true, '\r': true, '\t': true,
	}

	var result strings.Builder
	for _, r := range []rune(text) {
		// 保留中文字符、英文字母、数字和常见标点符号
		if (r >= '一' && r <= '龥') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= 'a' && r <= 'z') ||
			(r >= '0' && r <= '9') ||
			commonPunctuation[r] {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// Min 返回两个整数中的较小值
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
