package utils

import (
	"encoding/hex"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/blake2b"
)

// argon2id 参数（OWASP 最低推荐）
const (
	hashTime    = 2
	hashMemory  = 19 * 1024 // KiB
	hashThreads = 1
	hashKeyLen  = 32
)

// PasswordHasher 确定性口令摘要：同一部署密钥下同一明文得到同一摘要。
// 登录按 (username, digest) 等值查询。
type PasswordHasher struct {
	salt []byte
}

func NewPasswordHasher(appSecret string) *PasswordHasher {
	sum := blake2b.Sum256([]byte(appSecret))
	return &PasswordHasher{salt: sum[:]}
}

func (h *PasswordHasher) Hash(raw string) string {
	key := argon2.IDKey([]byte(raw), h.salt, hashTime, hashMemory, hashThreads, hashKeyLen)
	return hex.EncodeToString(key)
}
