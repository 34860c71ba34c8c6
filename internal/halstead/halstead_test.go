package halstead

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"spacemetrics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// record 是测试辅助函数，用于快速构造方法级 Halstead 记录。
func record(class *string, n1 json.Number, n2 json.Number, totalN1 json.Number, totalN2 json.Number) model.HalsteadRecord {
	return model.HalsteadRecord{
		Class:             class,
		DistinctOperators: n1,
		DistinctOperands:  n2,
		TotalOperators:    totalN1,
		TotalOperands:     totalN2,
	}
}

// TestSingleClassScenario 验证单个 impl Foo 的聚合与打分。
func TestSingleClassScenario(t *testing.T) {
	totals := Aggregate([]model.HalsteadRecord{record(model.Label("Foo"), "2", "3", "10", "15")})

	reports, err := totals.Reports()
	require.NoError(t, err)
	require.Len(t, reports, 1)

	expected := ((10.0 + 15.0) * math.Log2(5)) / 3000
	assert.Equal(t, "Foo", *reports[0].Class)
	assert.Equal(t, json.Number("2"), reports[0].TotalN1)
	assert.Equal(t, json.Number("3"), reports[0].TotalN2)
	assert.Equal(t, FormatScore(expected), reports[0].FaultPrediction)
	assert.Equal(t, "0.02", reports[0].FaultPrediction)
}

// TestAggregateSumsAndOrder 验证同类求和以及首次出现顺序。
func TestAggregateSumsAndOrder(t *testing.T) {
	foo := model.Label("Foo")
	bar := model.Label("Bar")
	top := model.Label(model.TopLevel)

	totals := Aggregate([]model.HalsteadRecord{
		record(foo, "1", "2", "3", "4"),
		record(top, "5", "5", "5", "5"),
		record(bar, "7", "0", "1", "0"),
		record(model.Label("Foo"), "10", "20", "30", "40"),
		record(nil, "1", "1", "1", "1"),
		record(nil, "2", "2", "2", "2.5"),
	})

	require.Equal(t, 4, totals.Len())
	classes := totals.Classes()

	assert.Equal(t, "Foo", *classes[0].Class)
	assert.Equal(t, model.ClassAggregate{
		Class:                  classes[0].Class,
		TotalDistinctOperators: "11",
		TotalDistinctOperands:  "22",
		TotalOperators:         "33",
		TotalOperands:          "44",
	}, classes[0])

	assert.Equal(t, model.TopLevel, *classes[1].Class)
	assert.Equal(t, "Bar", *classes[2].Class)

	assert.Nil(t, classes[3].Class)
	assert.Equal(t, json.Number("3"), classes[3].TotalDistinctOperators)
	assert.Equal(t, json.Number("3.5"), classes[3].TotalOperands)
}

// TestAggregateKeepsFloatForm 验证浮点输入的汇总值保持浮点写法。
func TestAggregateKeepsFloatForm(t *testing.T) {
	reports, err := Aggregate([]model.HalsteadRecord{
		record(model.Label("F"), "2.0", "3.0", "10.0", "15.0"),
	}).Reports()
	require.NoError(t, err)

	assert.Equal(t, json.Number("2.0"), reports[0].TotalN1)
	assert.Equal(t, json.Number("3.0"), reports[0].TotalN2)
	assert.Equal(t, "0.02", reports[0].FaultPrediction)
}

// TestFaultPredictionZeroVocabulary 验证 n1+n2 为 0 时得分为 "0.00"。
func TestFaultPredictionZeroVocabulary(t *testing.T) {
	score, err := FaultPrediction(0, 0, 100, 200)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	reports, err := Aggregate([]model.HalsteadRecord{record(model.Label("Z"), "0", "0", "9", "9")}).Reports()
	require.NoError(t, err)
	assert.Equal(t, "0.00", reports[0].FaultPrediction)
}

// TestFaultPredictionNegativeVocabulary 验证词汇量为负时返回领域错误。
func TestFaultPredictionNegativeVocabulary(t *testing.T) {
	_, err := FaultPrediction(-3, 1, 1, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDomain))

	_, err = Aggregate([]model.HalsteadRecord{record(model.Label("Neg"), "-5", "0", "0", "0")}).Reports()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDomain))
	assert.Contains(t, err.Error(), `"Neg"`)
}

func TestFaultPredictionFormula(t *testing.T) {
	score, err := FaultPrediction(16, 16, 1500, 1500)
	require.NoError(t, err)
	// log2(32) = 5，3000 * 5 / 3000 = 5。
	assert.InDelta(t, 5.0, score, 1e-12)
	assert.Equal(t, "5.00", FormatScore(score))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "0.00", FormatScore(0))
	assert.Equal(t, "1.50", FormatScore(1.5))
	assert.Equal(t, "0.13", FormatScore(0.126))
	assert.Equal(t, "12.35", FormatScore(12.3456))
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil)
	assert.Equal(t, 0, totals.Len())

	reports, err := totals.Reports()
	require.NoError(t, err)
	assert.Empty(t, reports)
}
