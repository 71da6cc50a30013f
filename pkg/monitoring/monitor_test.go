package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAnswer(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(XPAwarded)
	levelsBefore := testutil.ToFloat64(LevelUps)
	correctBefore := testutil.ToFloat64(AnswersChecked.WithLabelValues("MULTIPLE_CHOICE", "true"))

	RecordAnswer("MULTIPLE_CHOICE", true, 6, true)
	RecordAnswer("MULTIPLE_CHOICE", false, 0, false)

	assert.Equal(t, before+6, testutil.ToFloat64(XPAwarded))
	assert.Equal(t, levelsBefore+1, testutil.ToFloat64(LevelUps))
	assert.Equal(t, correctBefore+1, testutil.ToFloat64(AnswersChecked.WithLabelValues("MULTIPLE_CHOICE", "true")))
}
