// Package model 定义 spacemetrics 的核心数据模型。
// 输入侧是静态分析工具输出的 space 树，输出侧是扁平记录与类级汇总，
// 这些结构会被加载器、展开器、聚合器和输出层共同使用。
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// 已识别的 space 类型。其余类型在展开时被忽略。
const (
	KindFunction = "function"
	KindImpl     = "impl"
)

// TopLevel 是不属于任何 impl 的函数所使用的类名标记。
const TopLevel = "top-level"

// Zero 是缺失度量的默认值。
const Zero json.Number = "0"

var (
	// ErrNotObject 表示度量路径上的某一层不是 JSON 对象。
	ErrNotObject = errors.New("value is not an object")
	// ErrNotNumber 表示度量值不是 JSON 数字。
	ErrNotNumber = errors.New("value is not a number")
	// ErrNotString 表示 name 不是字符串。
	ErrNotString = errors.New("value is not a string")
)

// Report 表示输入 JSON 文档的顶层对象。
// 缺少 spaces 键时按空序列处理。
type Report struct {
	Name   *string
	Spaces []Space
}

// UnmarshalJSON 按精确键名读取顶层对象，name 不是字符串时忽略。
func (r *Report) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = Report{}
	if name, err := decodeString(fields["name"]); err == nil {
		r.Name = name
	}

	raw := fields["spaces"]
	if isAbsent(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, &r.Spaces); err != nil {
		return fmt.Errorf("spaces: %w", err)
	}
	return nil
}

// Space 表示 space 树中的一个节点（模块、impl 或函数）。
//
// 注意：
// - 节点只在解码时确认是 JSON 对象，各字段在被访问时才解析
// - 子节点和度量都是惰性解析，被跳过的子树不做任何类型检查
// - 键名精确匹配，Lloc 不会被当作 lloc
type Space struct {
	fields map[string]json.RawMessage
}

// UnmarshalJSON 只保存原始字段。null 节点等价于没有任何键的节点。
func (s *Space) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	s.fields = fields
	return nil
}

// Kind 返回节点类型以及 kind 键是否存在。
// kind 为 null 或非字符串时返回空类型，展开器会当作未识别类型跳过。
func (s Space) Kind() (string, bool) {
	raw, ok := s.fields["kind"]
	if !ok {
		return "", false
	}

	var kind string
	if isNull(raw) || json.Unmarshal(raw, &kind) != nil {
		return "", true
	}
	return kind, true
}

// Name 返回节点名称，缺失或 null 时返回 nil。
func (s Space) Name() (*string, error) {
	name, err := decodeString(s.fields["name"])
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	return name, nil
}

// Children 解析 spaces 子节点，缺失或 null 时返回空序列。
func (s Space) Children() ([]Space, error) {
	raw := s.fields["spaces"]
	if isAbsent(raw) {
		return nil, nil
	}

	var children []Space
	if err := json.Unmarshal(raw, &children); err != nil {
		return nil, fmt.Errorf("spaces: %w", err)
	}
	return children, nil
}

// Metric 按路径读取 metrics 下的数值，例如 Metric("loc", "lloc")。
// 路径上任意一层缺失或为 null 时返回 Zero。
func (s Space) Metric(path ...string) (json.Number, error) {
	current := s.fields["metrics"]
	for index, key := range path {
		if isAbsent(current) {
			return Zero, nil
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(current, &fields); err != nil {
			return Zero, fmt.Errorf("%s: %w", metricName(path[:index]), ErrNotObject)
		}
		current = fields[key]
	}

	if isAbsent(current) {
		return Zero, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(current))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return Zero, fmt.Errorf("%s: %w", metricName(path), err)
	}
	number, ok := value.(json.Number)
	if !ok {
		return Zero, fmt.Errorf("%s: %w", metricName(path), ErrNotNumber)
	}
	return number, nil
}

// LocMetrics 对应 metrics.loc。
type LocMetrics struct {
	Lloc json.Number
	Cloc json.Number
}

// HalsteadMetrics 对应 metrics.halstead。
type HalsteadMetrics struct {
	DistinctOperators      json.Number
	DistinctOperands       json.Number
	TotalOperators         json.Number
	TotalOperands          json.Number
	EstimatedProgramLength json.Number
}

// Loc 读取 metrics.loc 分组。
func (s Space) Loc() (LocMetrics, error) {
	var result LocMetrics
	var err error
	if result.Lloc, err = s.Metric("loc", "lloc"); err != nil {
		return LocMetrics{}, err
	}
	if result.Cloc, err = s.Metric("loc", "cloc"); err != nil {
		return LocMetrics{}, err
	}
	return result, nil
}

// CyclomaticSum 读取 metrics.cyclomatic.sum。
func (s Space) CyclomaticSum() (json.Number, error) {
	return s.Metric("cyclomatic", "sum")
}

// Halstead 读取 metrics.halstead 分组。
func (s Space) Halstead() (HalsteadMetrics, error) {
	var result HalsteadMetrics
	targets := []struct {
		key   string
		value *json.Number
	}{
		{key: "n1", value: &result.DistinctOperators},
		{key: "n2", value: &result.DistinctOperands},
		{key: "N1", value: &result.TotalOperators},
		{key: "N2", value: &result.TotalOperands},
		{key: "estimated_program_length", value: &result.EstimatedProgramLength},
	}

	for _, target := range targets {
		number, err := s.Metric("halstead", target.key)
		if err != nil {
			return HalsteadMetrics{}, err
		}
		*target.value = number
	}
	return result, nil
}

// Label 把字符串包装成可为 null 的类名/方法名。
func Label(value string) *string {
	return &value
}

func decodeString(raw json.RawMessage) (*string, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, ErrNotString
	}
	return &value, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || isNull(raw)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func metricName(path []string) string {
	if len(path) == 0 {
		return "metrics"
	}
	return "metrics." + strings.Join(path, ".")
}
