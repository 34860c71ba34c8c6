// Package halstead 提供按类聚合 Halstead 指标以及故障预测打分。
package halstead

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"spacemetrics/internal/model"
)

// FaultDivisor 是故障预测公式中的固定归一化常数。
const FaultDivisor = 3000

// ErrDomain 表示词汇量（n1+n2）为负，log2 无定义。
var ErrDomain = errors.New("halstead vocabulary is negative")

// classKey 区分具名类与 null 类名，null 类单独成桶。
type classKey struct {
	name  string
	named bool
}

func keyOf(class *string) classKey {
	if class == nil {
		return classKey{}
	}
	return classKey{name: *class, named: true}
}

// Totals 保存按首次出现顺序排列的类级累计值。
type Totals struct {
	order   []classKey
	byClass map[classKey]*model.ClassAggregate
}

// Aggregate 按输入顺序遍历记录，对同一类的 n1/n2/N1/N2 求和。
// 整数之和保持整数形式，含浮点时输出浮点形式。
func Aggregate(records []model.HalsteadRecord) *Totals {
	totals := &Totals{
		byClass: make(map[classKey]*model.ClassAggregate),
	}

	for _, record := range records {
		key := keyOf(record.Class)
		aggregate, ok := totals.byClass[key]
		if !ok {
			aggregate = &model.ClassAggregate{
				Class:                  record.Class,
				TotalDistinctOperators: model.Zero,
				TotalDistinctOperands:  model.Zero,
				TotalOperators:         model.Zero,
				TotalOperands:          model.Zero,
			}
			totals.byClass[key] = aggregate
			totals.order = append(totals.order, key)
		}
		aggregate.Add(record)
	}

	return totals
}

// Len 返回类的数量。
func (t *Totals) Len() int {
	return len(t.order)
}

// Classes 按首次出现顺序返回聚合结果的副本。
func (t *Totals) Classes() []model.ClassAggregate {
	result := make([]model.ClassAggregate, 0, len(t.order))
	for _, key := range t.order {
		result = append(result, *t.byClass[key])
	}
	return result
}

// Reports 为每个类计算故障预测并生成输出记录。
func (t *Totals) Reports() ([]model.ClassReport, error) {
	result := make([]model.ClassReport, 0, len(t.order))
	for _, aggregate := range t.Classes() {
		score, err := FaultPrediction(
			model.Float(aggregate.TotalDistinctOperators),
			model.Float(aggregate.TotalDistinctOperands),
			model.Float(aggregate.TotalOperators),
			model.Float(aggregate.TotalOperands),
		)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", describeClass(aggregate.Class), err)
		}

		result = append(result, model.ClassReport{
			Class:           aggregate.Class,
			TotalN1:         aggregate.TotalDistinctOperators,
			TotalN2:         aggregate.TotalDistinctOperands,
			FaultPrediction: FormatScore(score),
		})
	}
	return result, nil
}

// FaultPrediction 计算 ((N1+N2) * log2(n1+n2)) / 3000。
// 词汇量为 0 时得分为 0，为负时返回 ErrDomain。
func FaultPrediction(n1 float64, n2 float64, totalN1 float64, totalN2 float64) (float64, error) {
	vocabulary := n1 + n2
	if vocabulary < 0 {
		return 0, fmt.Errorf("%w: n1+n2=%v", ErrDomain, vocabulary)
	}
	if vocabulary == 0 {
		return 0, nil
	}
	return ((totalN1 + totalN2) * math.Log2(vocabulary)) / FaultDivisor, nil
}

// FormatScore 把得分格式化为两位小数的字符串。
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

func describeClass(class *string) string {
	if class == nil {
		return "null"
	}
	return strconv.Quote(*class)
}
