// Package flatten 把嵌套的 space 树展开为扁平的方法级记录。
// 遍历顺序为深度优先先序，兄弟节点与 impl 子节点保持原有相对顺序。
package flatten

import (
	"errors"
	"fmt"

	"spacemetrics/internal/model"
)

// ErrMissingKind 表示某个被访问到的节点缺少 kind 键。
var ErrMissingKind = errors.New("space is missing required key \"kind\"")

// Extractor 根据当前类名和函数节点生成一条记录。
// 只有被访问到的函数节点才会解析度量，解析失败时返回错误。
type Extractor[T any] func(class *string, space model.Space) (T, error)

// KindDescriptor 描述展开器对某类节点的处理方式。
type KindDescriptor struct {
	Kind     string
	Behavior string
}

// Kinds 返回展开器识别的节点类型。
func Kinds() []KindDescriptor {
	return []KindDescriptor{
		{Kind: model.KindFunction, Behavior: "emit one record tagged with the enclosing class"},
		{Kind: model.KindImpl, Behavior: "descend into spaces, children tagged with the impl name"},
		{Kind: "*", Behavior: "skipped together with its children"},
	}
}

// Flatten 展开 spaces 序列。
//
// 规则：
// - function 节点：使用当前类名生成一条记录
// - impl 节点：以 impl 的 name 作为新类名递归处理其 spaces，自身不生成记录
// - 其他类型（包括 kind 为 null 或非字符串）：静默跳过，不访问也不解析子节点
//
// 嵌套 impl 只保留最内层名称，不拼接外层名称。
func Flatten[T any](spaces []model.Space, class *string, extract Extractor[T]) ([]T, error) {
	result := make([]T, 0)
	if err := walk(spaces, class, "spaces", extract, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// walk 是 Flatten 的递归实现，path 用于在错误中定位节点。
func walk[T any](spaces []model.Space, class *string, path string, extract Extractor[T], result *[]T) error {
	for index, space := range spaces {
		nodePath := fmt.Sprintf("%s[%d]", path, index)
		kind, ok := space.Kind()
		if !ok {
			return fmt.Errorf("%s: %w", nodePath, ErrMissingKind)
		}

		switch kind {
		case model.KindFunction:
			record, err := extract(class, space)
			if err != nil {
				return fmt.Errorf("%s: %w", nodePath, err)
			}
			*result = append(*result, record)
		case model.KindImpl:
			name, err := space.Name()
			if err != nil {
				return fmt.Errorf("%s: %w", nodePath, err)
			}
			children, err := space.Children()
			if err != nil {
				return fmt.Errorf("%s: %w", nodePath, err)
			}
			if err := walk(children, name, nodePath+".spaces", extract, result); err != nil {
				return err
			}
		}
	}
	return nil
}

// Methods 以 top-level 为初始类名，展开出行数/注释/圈复杂度记录。
func Methods(report model.Report) ([]model.MethodRecord, error) {
	return Flatten(report.Spaces, model.Label(model.TopLevel), methodRecord)
}

// Halstead 以 top-level 为初始类名，展开出 Halstead 记录。
func Halstead(report model.Report) ([]model.HalsteadRecord, error) {
	return Flatten(report.Spaces, model.Label(model.TopLevel), halsteadRecord)
}

func methodRecord(class *string, space model.Space) (model.MethodRecord, error) {
	name, err := space.Name()
	if err != nil {
		return model.MethodRecord{}, err
	}
	loc, err := space.Loc()
	if err != nil {
		return model.MethodRecord{}, err
	}
	cyclomaticSum, err := space.CyclomaticSum()
	if err != nil {
		return model.MethodRecord{}, err
	}

	return model.MethodRecord{
		Class:         class,
		Method:        name,
		Loc:           loc.Lloc,
		Comments:      loc.Cloc,
		CyclomaticSum: cyclomaticSum,
	}, nil
}

func halsteadRecord(class *string, space model.Space) (model.HalsteadRecord, error) {
	name, err := space.Name()
	if err != nil {
		return model.HalsteadRecord{}, err
	}
	values, err := space.Halstead()
	if err != nil {
		return model.HalsteadRecord{}, err
	}

	return model.HalsteadRecord{
		Class:                  class,
		Method:                 name,
		DistinctOperators:      values.DistinctOperators,
		DistinctOperands:       values.DistinctOperands,
		TotalOperators:         values.TotalOperators,
		TotalOperands:          values.TotalOperands,
		EstimatedProgramLength: values.EstimatedProgramLength,
	}, nil
}
