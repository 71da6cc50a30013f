package progression

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"lingua_backend/internal/model"
)

func option(id uint, text string, correct bool, order int) model.ExerciseOption {
	o := model.ExerciseOption{Text: text, IsCorrect: correct, Order: order}
	o.ID = id
	return o
}

func exercise(typ model.ExerciseType, opts ...model.ExerciseOption) *model.Exercise {
	return &model.Exercise{Type: typ, XPReward: 2, Options: opts}
}

func TestEvaluateMultipleChoice(t *testing.T) {
	ex := exercise(model.MultipleChoice,
		option(1, "Hello", true, 1),
		option(2, "Goodbye", false, 2),
	)

	got := Evaluate(ex, OptionChoice(1))
	assert.True(t, got.IsCorrect)
	assert.Equal(t, "Hello", got.CorrectAnswer)

	got = Evaluate(ex, OptionChoice(2))
	assert.False(t, got.IsCorrect)
	assert.Equal(t, "Hello", got.CorrectAnswer)

	assert.False(t, Evaluate(ex, OptionChoice(99)).IsCorrect)
	assert.True(t, Evaluate(ex, FreeText(" 1 ")).IsCorrect, "numeric string is an option id")
	assert.False(t, Evaluate(ex, TokenSequence([]string{"1"})).IsCorrect)
}

func TestEvaluateFillInBlank(t *testing.T) {
	ex := exercise(model.FillInBlank, option(1, "Tag", true, 1))

	assert.True(t, Evaluate(ex, FreeText("  Tag ")).IsCorrect)
	assert.True(t, Evaluate(ex, FreeText("tAG")).IsCorrect)
	assert.False(t, Evaluate(ex, FreeText("Nacht")).IsCorrect)
	assert.False(t, Evaluate(ex, OptionChoice(1)).IsCorrect)
}

func TestEvaluateFillInBlankAcceptsAnyCorrectOption(t *testing.T) {
	ex := exercise(model.FillInBlank,
		option(1, "Hallo", true, 2),
		option(2, "Servus", true, 1),
	)

	got := Evaluate(ex, FreeText("hallo"))
	assert.True(t, got.IsCorrect)
	assert.Equal(t, "Servus", got.CorrectAnswer, "reported answer is the first by order")
}

func TestEvaluateVocabularyCheck(t *testing.T) {
	ex := exercise(model.VocabularyCheck, option(1, "der Name", true, 1))

	assert.True(t, Evaluate(ex, FreeText("DER NAME")).IsCorrect)
	assert.False(t, Evaluate(ex, FreeText("")).IsCorrect)
}

func TestEvaluateSentenceOrder(t *testing.T) {
	ex := exercise(model.SentenceOrder, option(1, "Ich heiße Anna", true, 1))

	assert.True(t, Evaluate(ex, TokenSequence([]string{"ich", "heiße", "Anna"})).IsCorrect)
	assert.False(t, Evaluate(ex, TokenSequence([]string{"Anna", "heiße", "ich"})).IsCorrect)
	assert.False(t, Evaluate(ex, FreeText("Ich heiße Anna")).IsCorrect)
	assert.False(t, Evaluate(ex, TokenSequence(nil)).IsCorrect)
}

func TestEvaluatePronunciation(t *testing.T) {
	ex := exercise(model.PronunciationPractice, option(1, "Guten Morgen", true, 1))

	assert.False(t, Evaluate(ex, FreeText("Guten Morgen")).IsCorrect)
	assert.True(t, Evaluate(ex, ExternalJudgment(true)).IsCorrect)
	assert.False(t, Evaluate(ex, ExternalJudgment(false)).IsCorrect)
}

func TestEvaluateFailsClosed(t *testing.T) {
	assert.False(t, Evaluate(nil, FreeText("x")).IsCorrect)
	assert.False(t, Evaluate(exercise("MATCHING", option(1, "x", true, 1)), FreeText("x")).IsCorrect)
	assert.False(t, Evaluate(exercise(model.FillInBlank), FreeText("")).IsCorrect, "no correct option")
	assert.False(t, Evaluate(exercise(model.FillInBlank, option(1, "Tag", true, 1)), Answer{}).IsCorrect)
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		raw  string
		want Answer
	}{
		{`3`, OptionChoice(3)},
		{`3.0`, OptionChoice(3)},
		{`"  Tag "`, FreeText("  Tag ")},
		{`["Ich","bin"]`, TokenSequence([]string{"Ich", "bin"})},
		{`true`, ExternalJudgment(true)},
		{`false`, ExternalJudgment(false)},
		{`null`, Answer{}},
		{``, Answer{}},
		{`-1`, Answer{}},
		{`2.5`, Answer{}},
		{`[]`, Answer{}},
		{`[1,2]`, Answer{}},
		{`{"id":1}`, Answer{}},
		{`nonsense`, Answer{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAnswer(json.RawMessage(tt.raw)))
		})
	}
}
