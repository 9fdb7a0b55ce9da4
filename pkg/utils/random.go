package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateStateToken 生成授权用的随机 state（12 字节 = 96 位熵，hex 编码）
func GenerateStateToken() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
