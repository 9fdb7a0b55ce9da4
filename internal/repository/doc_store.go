package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ==================== 文档存储 ====================

// docStore 单文件 JSON 文档存储
// 每个文档整条读写，写入即整文件覆盖；不做版本迁移，后写覆盖先写
type docStore struct {
	path string
}

func newDocStore(dataDir, name string) *docStore {
	return &docStore{path: filepath.Join(dataDir, name)}
}

// load 读取文档到 out；文件缺失或解析失败时保持 out 原值（调用方预填缺省）
func (s *docStore) load(out any) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(raw, out)
}

// save 整文档覆盖写入
func (s *docStore) save(doc any) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
