// Package store reads the GUI's rule-set and subscription stores and writes
// migrated profiles back to disk.
package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Get when an id is not in the store.
var ErrNotFound = errors.New("not found")

// loadList 读取 YAML 列表文件；文件不存在视为空列表
func loadList[T any](path string) ([]T, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, err
	}

	var items []T
	if err := yaml.Unmarshal(content, &items); err != nil {
		return nil, fmt.Errorf("invalid store file %s: %w", path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
