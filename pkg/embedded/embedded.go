// Package embedded 提供嵌入数据的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量声明在项目根目录（embed.go），启动时通过 Init() 注入。
//
// 路径以 "data/" 开头时优先从嵌入数据读取；其他路径以及未初始化时
// 回退到本地文件系统，这样测试和 -config 参数可以直接使用磁盘文件。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 注入嵌入的数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并移除 "./" 前缀（embed.FS 使用正斜杠）
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// isEmbeddedPath 判断路径是否应该从嵌入数据读取
func isEmbeddedPath(path string) bool {
	return initialized && strings.HasPrefix(path, "data/")
}

// ReadFile 读取文件内容
//
// 返回：
//   - []byte: 文件内容
//   - error: 文件不存在或读取失败
func ReadFile(path string) ([]byte, error) {
	normalized := normalize(path)
	if isEmbeddedPath(normalized) {
		data, err := fs.ReadFile(dataFS, normalized)
		if err == nil {
			return data, nil
		}
		// 嵌入数据里没有时允许读取磁盘上的同名文件（开发期覆盖）
		if diskData, diskErr := os.ReadFile(path); diskErr == nil {
			return diskData, nil
		}
		return nil, fmt.Errorf("read embedded %s: %w", normalized, err)
	}
	return os.ReadFile(path)
}

// Exists 检查文件是否存在（嵌入数据或本地文件系统）
func Exists(path string) bool {
	normalized := normalize(path)
	if isEmbeddedPath(normalized) {
		if _, err := fs.Stat(dataFS, normalized); err == nil {
			return true
		}
	}
	_, err := os.Stat(path)
	return err == nil
}

// Glob 在嵌入数据中匹配文件
// 路径模式必须以 "data/" 开头
func Glob(pattern string) ([]string, error) {
	pattern = normalize(pattern)
	if !isEmbeddedPath(pattern) {
		return filepath.Glob(pattern)
	}
	return fs.Glob(dataFS, pattern)
}
