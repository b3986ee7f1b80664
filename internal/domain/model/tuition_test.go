package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeTuitions(t *testing.T) {
	batch := &TuitionBatch{ID: "b1", Amount: 500000}
	tuitions := []Tuition{
		{ID: "1", Status: TuitionPaid},
		{ID: "2", Status: TuitionUnpaid},
		{ID: "3", Status: TuitionPaid},
		{ID: "4", Status: TuitionUnpaid},
	}

	s := SummarizeTuitions(batch, tuitions)
	assert.InDelta(t, 2000000, s.Expected, 0.001)
	assert.InDelta(t, 1000000, s.Collected, 0.001)
	assert.InDelta(t, 1000000, s.Remaining, 0.001)
	assert.Equal(t, 2, s.PaidCount)
	assert.Equal(t, 4, s.Total)

	assert.Equal(t, TuitionSummary{}, SummarizeTuitions(nil, tuitions))
}

func TestFindBatch(t *testing.T) {
	batches := []TuitionBatch{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, ID("b"), FindBatch(batches, "b").ID)
	assert.Equal(t, ID("a"), FindBatch(batches, "").ID)
	assert.Equal(t, ID("a"), FindBatch(batches, "zzz").ID)
	assert.Nil(t, FindBatch(nil, "a"))
}

func TestTuitionDecoding(t *testing.T) {
	var batch TuitionBatch
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"title":"Tháng 9","amount":"450000.00","class_id":"c1"}`), &batch))
	assert.Equal(t, ID("7"), batch.ID)
	assert.InDelta(t, 450000, batch.Amount.Float64(), 0.001)

	var tu Tuition
	require.NoError(t, json.Unmarshal([]byte(`{"id":"t1","student_name":"An","status":"paid","paid_at":"2024-09-05T08:00:00.000Z"}`), &tu))
	assert.True(t, tu.Paid())
	assert.Equal(t, 2024, tu.PaidAt.Year())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"t2","status":"unpaid","paid_at":null}`), &tu))
	assert.True(t, tu.PaidAt.IsZero())
}

func TestParseScore(t *testing.T) {
	s, err := ParseScore("")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = ParseScore("8,5")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.InDelta(t, 8.5, *s, 0.0001)

	_, err = ParseScore("abc")
	assert.Error(t, err)
}

func TestExamDecoding_DateOnly(t *testing.T) {
	var e Exam
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"title":"Giữa kỳ","date":"2024-10-15","max_score":"10"}`), &e))
	assert.Equal(t, "2024-10-15", e.Date.DateInput())
	assert.InDelta(t, 10, e.MaxScore.Float64(), 0.001)
}

func TestClassmate_Initial(t *testing.T) {
	assert.Equal(t, "Đ", Classmate{FullName: "đặng Minh"}.Initial())
	assert.Equal(t, "U", Classmate{}.Initial())
}
