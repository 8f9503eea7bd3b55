package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// RequestSignature computes the md5 digest the Marvel API requires on every
// request: md5(ts + privateKey + publicKey), hex encoded.
func RequestSignature(ts, privateKey, publicKey string) string {
	sum := md5.Sum([]byte(ts + privateKey + publicKey))
	return hex.EncodeToString(sum[:])
}
