package models

// TraitScores 五维性格得分，范围[0,100]
type TraitScores struct {
	Agreableness      float64 `json:"agreableness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Neuroticism       float64 `json:"neuroticism"`
	Openness          float64 `json:"openness"`
}

// Add 累加另一组得分（分块求和时使用）
func (t *TraitScores) Add(other TraitScores) {
	t.Agreableness += other.Agreableness
	t.Conscientiousness += other.Conscientiousness
	t.Extraversion += other.Extraversion
	t.Neuroticism += other.Neuroticism
	t.Openness += other.Openness
}

// Divide 对各维度取平均
func (t *TraitScores) Divide(n float64) {
	if n == 0 {
		return
	}
	t.Agreableness /= n
	t.Conscientiousness /= n
	t.Extraversion /= n
	t.Neuroticism /= n
	t.Openness /= n
}

// CharacterTrait 一篇日记的性格画像，1:1挂在日记上
type CharacterTrait struct {
	ID                int64   `db:"id" json:"id"`
	EntryID           int64   `db:"entry_id" json:"entry_id"`
	Agreableness      float64 `db:"agreableness" json:"agreableness"`
	Conscientiousness float64 `db:"conscientiousness" json:"conscientiousness"`
	Extraversion      float64 `db:"extraversion" json:"extraversion"`
	Neuroticism       float64 `db:"neuroticism" json:"neuroticism"`
	Openness          float64 `db:"openness" json:"openness"`
	MBTIType          string  `db:"mbti_type" json:"mbti_type"`
}

// AsMap 转换为响应用的映射
func (c *CharacterTrait) AsMap() map[string]any {
	return map[string]any{
		"entry_id":          c.EntryID,
		"agreableness":      c.Agreableness,
		"conscientiousness": c.Conscientiousness,
		"extraversion":      c.Extraversion,
		"neuroticism":       c.Neuroticism,
		"openness":          c.Openness,
		"mbti_type":         c.MBTIType,
	}
}

// DeriveMBTIType 由五维平均得分推导4字母性格类型。
// 神经质>50时走高压分支，各轴阈值比较均为严格比较，
// 例如 extraversion 恰为60且 neuroticism>50 时取 E 而非 I。
func DeriveMBTIType(scores TraitScores) string {
	highNeuroticism := scores.Neuroticism > 50

	var ei byte
	if highNeuroticism {
		if scores.Extraversion < 60 {
			ei = 'I'
		} else {
			ei = 'E'
		}
	} else {
		if scores.Extraversion > 40 {
			ei = 'E'
		} else {
			ei = 'I'
		}
	}

	var ns byte
	if scores.Openness > 50 {
		ns = 'N'
	} else {
		ns = 'S'
	}

	var tf byte
	if highNeuroticism {
		if scores.Agreableness > 40 {
			tf = 'F'
		} else {
			tf = 'T'
		}
	} else {
		if scores.Agreableness < 60 {
			tf = 'T'
		} else {
			tf = 'F'
		}
	}

	var jp byte
	if highNeuroticism {
		if scores.Conscientiousness > 40 {
			jp = 'J'
		} else {
			jp = 'P'
		}
	} else {
		if scores.Conscientiousness < 60 {
			jp = 'P'
		} else {
			jp = 'J'
		}
	}

	return string([]byte{ei, ns, tf, jp})
}
