package progression

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type AnswerKind int

const (
	AnswerNone AnswerKind = iota
	AnswerOption
	AnswerText
	AnswerTokens
	AnswerExternal
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerOption:
		return "option"
	case AnswerText:
		return "text"
	case AnswerTokens:
		return "tokens"
	case AnswerExternal:
		return "external"
	default:
		return "none"
	}
}

// Answer 提交答案的标签联合体，字段是否有效由 Kind 决定
type Answer struct {
	Kind     AnswerKind
	OptionID uint
	Text     string
	Tokens   []string
	Judgment bool
}

func OptionChoice(id uint) Answer {
	return Answer{Kind: AnswerOption, OptionID: id}
}

func FreeText(text string) Answer {
	return Answer{Kind: AnswerText, Text: text}
}

func TokenSequence(tokens []string) Answer {
	return Answer{Kind: AnswerTokens, Tokens: tokens}
}

// ExternalJudgment 由外部服务（如发音评测）给出的判定结果
func ExternalJudgment(correct bool) Answer {
	return Answer{Kind: AnswerExternal, Judgment: correct}
}

// ParseAnswer 将请求中的原始 JSON 值转换为 Answer。
// 数字 -> OptionChoice，字符串 -> FreeText，字符串数组 -> TokenSequence，布尔 -> ExternalJudgment。
// 无法识别的输入返回零值 Answer，判定时按答错处理。
func ParseAnswer(raw json.RawMessage) Answer {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Answer{}
	}

	switch raw[0] {
	case 'n', '{':
		return Answer{}
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Answer{}
		}
		return FreeText(s)
	case '[':
		var tokens []string
		if err := json.Unmarshal(raw, &tokens); err != nil || len(tokens) == 0 {
			return Answer{}
		}
		return TokenSequence(tokens)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Answer{}
		}
		return ExternalJudgment(b)
	}

	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		// 1.0 这类浮点写法
		var f float64
		if json.Unmarshal(raw, &f) != nil || f < 0 || f != float64(uint64(f)) {
			return Answer{}
		}
		id = uint64(f)
	}
	return OptionChoice(uint(id))
}
