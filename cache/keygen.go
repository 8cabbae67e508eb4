package cache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Key builds a deterministic store key by hashing the ordered parts. Order
// matters: callers must pass identity fields in a fixed sequence.
func Key(prefix string, parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return prefix + "_" + hex.EncodeToString(sum[:])
}
