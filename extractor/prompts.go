package extractor

import "fmt"

// 各轴的提示词模板。模型要求只返回JSON，客户端侧仍做JSON截取兜底。

const emotionPromptTemplate = `你是日记情绪分类器。判断下面这段日记文本表达的主要情绪，` +
	`只能从 love/joy/sadness/anger/fear/surprise 中选一个；如果没有明显情绪，返回空字符串。` +
	`以JSON格式返回，例如 {"emotion": "joy"}，不要输出其他内容。

文本：
%s`

const characterPromptTemplate = `你是性格分析器。根据下面这段日记文本，给出大五人格五个维度的得分，范围0-100。` +
	`以JSON格式返回，例如 {"agreableness": 55, "conscientiousness": 40, "extraversion": 62, "neuroticism": 30, "openness": 71}，` +
	`不要输出其他内容。

文本：
%s`

const eventPromptTemplate = `你是事件抽取器。从下面这段日记文本中抽取一个发生的事件，` +
	`各字段均为字符串数组：characters(人物)、actions(动作)、locations(地点)、times(时间)、objects(物品)、` +
	`subjects(主语)、adjectives(形容词)、adverbs(副词)、topics(话题)、organizations(组织)、sub_events(子事件)。` +
	`以JSON格式返回，例如 {"event": {"characters": ["妈妈"], "actions": ["做饭"], ...}}；` +
	`如果文本中没有事件，返回 {"event": null}。不要输出其他内容。

文本：
%s`

const advicePromptTemplate = `你是温和的日记顾问。根据用户在该时间段的情绪分布、性格画像和发生的事件，` +
	`用两三句话给出贴心、具体的建议，直接输出建议文本即可。

情绪分布：
%s

性格画像：
%s

事件：
%s`

func buildEmotionPrompt(chunk string) string {
	return fmt.Sprintf(emotionPromptTemplate, chunk)
}

func buildCharacterPrompt(chunk string) string {
	return fmt.Sprintf(characterPromptTemplate, chunk)
}

func buildEventPrompt(chunk string) string {
	return fmt.Sprintf(eventPromptTemplate, chunk)
}

func buildAdvicePrompt(emotions, characters, events string) string {
	return fmt.Sprintf(advicePromptTemplate, emotions, characters, events)
}
