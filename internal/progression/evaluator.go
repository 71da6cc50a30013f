package progression

import (
	"sort"
	"strconv"
	"strings"

	"lingua_backend/internal/model"
)

const (
	FeedbackCorrect   = "Correct!"
	FeedbackIncorrect = "Uh Oh. Try again."
)

// Evaluation 单次答案判定结果
type Evaluation struct {
	IsCorrect     bool
	CorrectAnswer string
}

// Evaluate 按练习类型判定答案。类型未知或答案形态不匹配时返回答错，不会报错。
func Evaluate(ex *model.Exercise, answer Answer) Evaluation {
	if ex == nil {
		return Evaluation{}
	}

	correctOptions := correctOptionsOf(ex.Options)
	eval := Evaluation{}
	if len(correctOptions) > 0 {
		eval.CorrectAnswer = correctOptions[0].Text
	}

	switch ex.Type {
	case model.MultipleChoice:
		id, ok := optionIDOf(answer)
		if !ok {
			return eval
		}
		for _, opt := range ex.Options {
			if opt.ID == id {
				eval.IsCorrect = opt.IsCorrect
				break
			}
		}

	case model.FillInBlank, model.VocabularyCheck:
		if answer.Kind != AnswerText {
			return eval
		}
		for _, opt := range correctOptions {
			if textEqual(answer.Text, opt.Text) {
				eval.IsCorrect = true
				break
			}
		}

	case model.SentenceOrder:
		if answer.Kind != AnswerTokens || len(answer.Tokens) == 0 || len(correctOptions) == 0 {
			return eval
		}
		eval.IsCorrect = textEqual(strings.Join(answer.Tokens, " "), correctOptions[0].Text)

	case model.PronunciationPractice:
		// 发音由外部评测，本服务只接受外部给出的结论
		if answer.Kind == AnswerExternal {
			eval.IsCorrect = answer.Judgment
		}
	}

	return eval
}

func optionIDOf(answer Answer) (uint, bool) {
	switch answer.Kind {
	case AnswerOption:
		return answer.OptionID, true
	case AnswerText:
		id, err := strconv.ParseUint(strings.TrimSpace(answer.Text), 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(id), true
	}
	return 0, false
}

// textEqual 忽略首尾空白与大小写；正确答案为空时永不匹配
func textEqual(submitted, expected string) bool {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(submitted), expected)
}

func correctOptionsOf(options []model.ExerciseOption) []model.ExerciseOption {
	var out []model.ExerciseOption
	for _, opt := range options {
		if opt.IsCorrect {
			out = append(out, opt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
