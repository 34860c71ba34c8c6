package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSumKeepsIntegerForm 验证整数相加保持整数形式且不丢精度。
func TestSumKeepsIntegerForm(t *testing.T) {
	assert.Equal(t, json.Number("5"), Sum("2", "3"))
	assert.Equal(t, json.Number("-1"), Sum("2", "-3"))
	assert.Equal(t, json.Number("9007199254740994"), Sum("9007199254740993", "1"))
	assert.Equal(t, json.Number("3"), Sum("", "3"))
}

// TestSumFloatForm 验证只要有一侧是浮点写法，结果就是浮点写法。
func TestSumFloatForm(t *testing.T) {
	assert.Equal(t, json.Number("5.0"), Sum("2.0", "3"))
	assert.Equal(t, json.Number("0.5"), Sum("0", "0.5"))
	assert.Equal(t, json.Number("1000.0"), Sum("1e3", "0"))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, json.Number("0.0"), FormatFloat(0))
	assert.Equal(t, json.Number("10.0"), FormatFloat(10))
	assert.Equal(t, json.Number("2.5"), FormatFloat(2.5))
	assert.Equal(t, json.Number("1e+16"), FormatFloat(1e16))
	assert.Equal(t, json.Number("1.5e-05"), FormatFloat(0.000015))
}

func TestFloat(t *testing.T) {
	assert.Equal(t, 10.0, Float("10.0"))
	assert.Equal(t, 0.0, Float(Zero))
}
