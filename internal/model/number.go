package model

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Sum 返回两个数值之和，并保留输入的书写形式。
// 两个整数字面量按任意精度整数相加，否则按浮点相加并输出为 10.0 这样的形式。
func Sum(a json.Number, b json.Number) json.Number {
	if a == "" {
		a = Zero
	}
	if b == "" {
		b = Zero
	}

	if isIntegerLiteral(a) && isIntegerLiteral(b) {
		left, okLeft := new(big.Int).SetString(a.String(), 10)
		right, okRight := new(big.Int).SetString(b.String(), 10)
		if okLeft && okRight {
			return json.Number(left.Add(left, right).String())
		}
	}
	return FormatFloat(Float(a) + Float(b))
}

// Float 把数值转换为 float64，超出范围时返回 ±Inf。
func Float(number json.Number) float64 {
	value, _ := number.Float64()
	return value
}

// FormatFloat 以浮点字面量形式输出数值：整数值保留 .0，
// 绝对值不在 [1e-4, 1e16) 内时使用指数形式。
func FormatFloat(value float64) json.Number {
	magnitude := math.Abs(value)
	if value == 0 || (magnitude >= 1e-4 && magnitude < 1e16) {
		text := strconv.FormatFloat(value, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
		return json.Number(text)
	}
	return json.Number(strconv.FormatFloat(value, 'e', -1, 64))
}

func isIntegerLiteral(number json.Number) bool {
	return !strings.ContainsAny(number.String(), ".eE")
}
