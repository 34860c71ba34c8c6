// Package loader 负责定位并读取静态分析工具输出的 JSON 报告。
// 该层只做路径校验、文件读取和解码，不负责树的展开。
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"spacemetrics/internal/model"
)

var (
	// ErrEmptyPath 表示未提供报告路径。
	ErrEmptyPath = errors.New("report path is empty")
	// ErrIsDirectory 表示给定路径是目录而不是文件。
	ErrIsDirectory = errors.New("report path is a directory")
)

// Load 读取并解码 targetPath 指向的报告文件。
// 整个文件一次性读入内存，不做流式解析。
func Load(targetPath string) (model.Report, error) {
	var report model.Report

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return report, ErrEmptyPath
	}

	absolutePath, err := filepath.Abs(trimmedPath)
	if err != nil {
		return report, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absolutePath)
	if err != nil {
		return report, fmt.Errorf("stat report: %w", err)
	}
	if info.IsDir() {
		return report, fmt.Errorf("%s: %w", absolutePath, ErrIsDirectory)
	}

	file, err := os.Open(absolutePath)
	if err != nil {
		return report, fmt.Errorf("open report: %w", err)
	}

	report, decodeErr := Decode(file)
	closeErr := file.Close()

	if decodeErr != nil {
		return model.Report{}, decodeErr
	}
	if closeErr != nil {
		return model.Report{}, fmt.Errorf("close report: %w", closeErr)
	}
	return report, nil
}

// Decode 从 reader 读取完整文档并解码。
// 文档末尾多余的内容视为格式错误。
func Decode(reader io.Reader) (model.Report, error) {
	var report model.Report

	content, err := io.ReadAll(reader)
	if err != nil {
		return report, fmt.Errorf("read report: %w", err)
	}

	if err := json.Unmarshal(content, &report); err != nil {
		return model.Report{}, fmt.Errorf("decode report: %w", err)
	}
	return report, nil
}
