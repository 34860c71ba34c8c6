// Package report 提供 spacemetrics 的输出能力。
// 每条记录输出为一个 2 空格缩进的 JSON 对象，对象之间以换行分隔，
// 同一份内容既可以写到标准输出，也可以导出到文件。
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf16"
	"unicode/utf8"
)

// PrintRecords 把记录逐条编码为易读 JSON 写入 writer。
// 关闭 HTML 转义，保证 <impl Foo> 之类的名称原样输出；
// 非 ASCII 字符统一输出为 \uXXXX 转义，整份输出保持纯 ASCII。
func PrintRecords[T any](writer io.Writer, records []T) error {
	var encoded bytes.Buffer
	encoder := json.NewEncoder(&encoded)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	for _, record := range records {
		encoded.Reset()
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		if _, err := writer.Write(escapeNonASCII(encoded.Bytes())); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	return nil
}

// escapeNonASCII 把 JSON 文本中的非 ASCII 字符改写为 \uXXXX，
// 基本平面以外的字符拆成 UTF-16 代理对。
// encoding/json 的输出中非 ASCII 字符只会出现在字符串内部，因此可以直接替换。
func escapeNonASCII(data []byte) []byte {
	result := make([]byte, 0, len(data))
	for len(data) > 0 {
		if data[0] < utf8.RuneSelf {
			result = append(result, data[0])
			data = data[1:]
			continue
		}

		char, size := utf8.DecodeRune(data)
		data = data[size:]
		if first, second := utf16.EncodeRune(char); first != utf8.RuneError {
			result = fmt.Appendf(result, "\\u%04x\\u%04x", first, second)
			continue
		}
		result = fmt.Appendf(result, "\\u%04x", char)
	}
	return result
}

// Output 在内存中缓存一次运行的全部输出。
// 命令层先完成全部计算再一次性刷出，失败时不会留下半截结果。
type Output struct {
	buffer bytes.Buffer
}

// Append 把一组记录追加到缓存中。
func Append[T any](output *Output, records []T) error {
	return PrintRecords(&output.buffer, records)
}

// Bytes 返回当前缓存的内容。
func (o *Output) Bytes() []byte {
	return o.buffer.Bytes()
}

// Flush 把缓存内容写入 writer。
func (o *Output) Flush(writer io.Writer) error {
	if _, err := writer.Write(o.buffer.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// WriteFile 将缓存内容导出到指定路径。
// 如果目录不存在会自动创建。
func (o *Output) WriteFile(path string) error {
	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, o.buffer.Bytes(), 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}
