package models

// EmotionLabels 六种情绪标签，顺序固定
var EmotionLabels = []string{"love", "joy", "sadness", "anger", "fear", "surprise"}

// Emotion 一篇日记的情绪标记，六个独立布尔位可同时为真
type Emotion struct {
	ID       int64 `db:"id" json:"id"`
	EntryID  int64 `db:"entry_id" json:"entry_id"`
	Love     bool  `db:"love" json:"love"`
	Joy      bool  `db:"joy" json:"joy"`
	Sadness  bool  `db:"sadness" json:"sadness"`
	Anger    bool  `db:"anger" json:"anger"`
	Fear     bool  `db:"fear" json:"fear"`
	Surprise bool  `db:"surprise" json:"surprise"`
}

// SetFlag 按标签点亮对应情绪位，未知标签（含空串）不产生任何效果
func (e *Emotion) SetFlag(label string) {
	switch label {
	case "love":
		e.Love = true
	case "joy":
		e.Joy = true
	case "sadness":
		e.Sadness = true
	case "anger":
		e.Anger = true
	case "fear":
		e.Fear = true
	case "surprise":
		e.Surprise = true
	}
}

// Flags 返回为真的情绪标签列表，顺序与EmotionLabels一致
func (e *Emotion) Flags() []string {
	flags := make([]string, 0, len(EmotionLabels))
	set := map[string]bool{
		"love": e.Love, "joy": e.Joy, "sadness": e.Sadness,
		"anger": e.Anger, "fear": e.Fear, "surprise": e.Surprise,
	}
	for _, label := range EmotionLabels {
		if set[label] {
			flags = append(flags, label)
		}
	}
	return flags
}
