package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   []int // 各分块的期望长度
	}{
		{name: "空文本", length: 0, want: []int{}},
		{name: "不足尾块下限全部丢弃", length: 100, want: []int{}},
		{name: "刚过尾块下限整段保留", length: 101, want: []int{101}},
		{name: "恰为一个分块长度", length: 128, want: []int{128}},
		// i+128<L不成立(128+128=256不小于256)，残块128>100整段保留
		{name: "恰为两个分块长度", length: 256, want: []int{128, 128}},
		{name: "整块加短尾块丢弃尾部", length: 228, want: []int{128}},
		{name: "整块加长尾块保留尾部", length: 229, want: []int{128, 101}},
		{name: "三个窗口", length: 384, want: []int{128, 128, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkText(strings.Repeat("字", tt.length))
			lengths := make([]int, 0, len(chunks))
			for _, c := range chunks {
				lengths = append(lengths, len([]rune(c)))
			}
			assert.Equal(t, tt.want, lengths)
		})
	}
}

func TestChunkTextMultibyteSafe(t *testing.T) {
	text := strings.Repeat("今天天气真好，", 30) // 210个rune
	chunks := ChunkText(text)

	assert.Len(t, chunks, 1)
	assert.Equal(t, 128, len([]rune(chunks[0])))
	// 分块按rune切分，每块都是合法UTF-8
	assert.True(t, strings.HasPrefix(text, chunks[0]))
}

func TestDeduplicateSlice(t *testing.T) {
	got := DeduplicateSlice([]string{"joy", "sadness", "joy", " ", "", "sadness", "love"})
	assert.Equal(t, []string{"joy", "sadness", "love"}, got)
}

func TestFilterSpecialSymbols(t *testing.T) {
	got := FilterSpecialSymbols("今天☀很开心！emoji😀和乱码�都该被过滤。OK123")
	assert.Equal(t, "今天很开心！emoji和乱码都该被过滤。OK123", got)
}
