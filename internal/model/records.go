package model

import (
	"encoding/json"
	"reflect"
	"strings"
)

// MethodRecord 是 query 命令输出的单行记录。
// 字段顺序即 JSON 输出顺序，数值保持输入中的原始写法。
type MethodRecord struct {
	Class         *string     `json:"class"`
	Method        *string     `json:"method"`
	Loc           json.Number `json:"loc"`
	Comments      json.Number `json:"comments"`
	CyclomaticSum json.Number `json:"cyclomatic_sum"`
}

// HalsteadRecord 是 halstead 命令输出的方法级记录。
type HalsteadRecord struct {
	Class                  *string     `json:"class"`
	Method                 *string     `json:"method"`
	DistinctOperators      json.Number `json:"n1"`
	DistinctOperands       json.Number `json:"n2"`
	TotalOperators         json.Number `json:"N1"`
	TotalOperands          json.Number `json:"N2"`
	EstimatedProgramLength json.Number `json:"N"`
}

// ClassAggregate 表示某个类的 Halstead 累计值。
// 只允许通过 Add 做加法，不做除法或中途清零。
type ClassAggregate struct {
	Class                  *string     `json:"class"`
	TotalDistinctOperators json.Number `json:"total_n1"`
	TotalDistinctOperands  json.Number `json:"total_n2"`
	TotalOperators         json.Number `json:"total_N1"`
	TotalOperands          json.Number `json:"total_N2"`
}

// Add 将一条方法记录累加到当前类。
func (a *ClassAggregate) Add(record HalsteadRecord) {
	a.TotalDistinctOperators = Sum(a.TotalDistinctOperators, record.DistinctOperators)
	a.TotalDistinctOperands = Sum(a.TotalDistinctOperands, record.DistinctOperands)
	a.TotalOperators = Sum(a.TotalOperators, record.TotalOperators)
	a.TotalOperands = Sum(a.TotalOperands, record.TotalOperands)
}

// ClassReport 是 halstead 命令输出的类级记录。
// FaultPrediction 固定保留两位小数的字符串。
type ClassReport struct {
	Class           *string     `json:"class"`
	TotalN1         json.Number `json:"total_n1"`
	TotalN2         json.Number `json:"total_n2"`
	FaultPrediction string      `json:"fault_prediction"`
}

// FieldNames 按声明顺序返回结构体的 JSON 字段名，供 kinds 命令展示。
func FieldNames(record any) []string {
	recordType := reflect.TypeOf(record)
	if recordType.Kind() == reflect.Pointer {
		recordType = recordType.Elem()
	}
	if recordType.Kind() != reflect.Struct {
		return nil
	}

	names := make([]string, 0, recordType.NumField())
	for i := 0; i < recordType.NumField(); i++ {
		tag := recordType.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		names = append(names, name)
	}
	return names
}
