package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveMBTIType(t *testing.T) {
	tests := []struct {
		name   string
		scores TraitScores
		want   string
	}{
		{
			name: "高神经质典型INTP",
			scores: TraitScores{
				Neuroticism:       60,
				Extraversion:      50,
				Openness:          60,
				Agreableness:      30,
				Conscientiousness: 30,
			},
			want: "INTP",
		},
		{
			// 高神经质分支E/I用严格小于60，恰为60取E
			name: "外向恰为60且神经质60取E",
			scores: TraitScores{
				Neuroticism:       60,
				Extraversion:      60,
				Openness:          60,
				Agreableness:      30,
				Conscientiousness: 30,
			},
			want: "ENTP",
		},
		{
			// 神经质恰为50不算高，走低压分支
			name: "神经质恰为50走低压分支",
			scores: TraitScores{
				Neuroticism:       50,
				Extraversion:      41,
				Openness:          51,
				Agreableness:      59,
				Conscientiousness: 59,
			},
			want: "ENTP",
		},
		{
			// 低压分支各阈值均为严格比较：恰在阈值上取另一侧
			name: "低压分支阈值边界",
			scores: TraitScores{
				Neuroticism:       0,
				Extraversion:      40,
				Openness:          50,
				Agreableness:      60,
				Conscientiousness: 60,
			},
			want: "ISFJ",
		},
		{
			name: "高神经质温和尽责型",
			scores: TraitScores{
				Neuroticism:       80,
				Extraversion:      70,
				Openness:          30,
				Agreableness:      50,
				Conscientiousness: 50,
			},
			want: "ESFJ",
		},
		{
			name:   "全零画像",
			scores: TraitScores{},
			want:   "ISTP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveMBTIType(tt.scores))
		})
	}
}

func TestTraitScoresAddDivide(t *testing.T) {
	var sum TraitScores
	sum.Add(TraitScores{Agreableness: 40, Conscientiousness: 60, Extraversion: 20, Neuroticism: 80, Openness: 100})
	sum.Add(TraitScores{Agreableness: 60, Conscientiousness: 40, Extraversion: 40, Neuroticism: 20, Openness: 0})
	sum.Divide(2)

	assert.Equal(t, 50.0, sum.Agreableness)
	assert.Equal(t, 50.0, sum.Conscientiousness)
	assert.Equal(t, 30.0, sum.Extraversion)
	assert.Equal(t, 50.0, sum.Neuroticism)
	assert.Equal(t, 50.0, sum.Openness)
}

func TestTraitScoresDivideByZero(t *testing.T) {
	sum := TraitScores{Agreableness: 10}
	sum.Divide(0)
	assert.Equal(t, 10.0, sum.Agreableness)
}

func TestEmotionSetFlagAndFlags(t *testing.T) {
	var e Emotion
	e.SetFlag("joy")
	e.SetFlag("surprise")
	e.SetFlag("joy")
	e.SetFlag("")        // 空标签无效果
	e.SetFlag("unknown") // 未知标签无效果

	assert.Equal(t, []string{"joy", "surprise"}, e.Flags())
}

func TestEmotionFlagsEmpty(t *testing.T) {
	var e Emotion
	assert.Empty(t, e.Flags())
}

func TestEventDescribeNormalizesNilFields(t *testing.T) {
	e := Event{Characters: []string{"妈妈"}, Actions: []string{"做饭"}}
	desc := e.Describe()

	assert.Contains(t, desc, `"characters":["妈妈"]`)
	assert.Contains(t, desc, `"actions":["做饭"]`)
	// 未赋值的字段序列化为[]而非null
	assert.Contains(t, desc, `"locations":[]`)
	assert.NotContains(t, desc, "null")
}

func TestEventIsEmpty(t *testing.T) {
	assert.True(t, (&Event{}).IsEmpty())
	assert.False(t, (&Event{Topics: []string{"天气"}}).IsEmpty())
}
