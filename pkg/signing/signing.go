// Package signing implements the request body signature scheme shared
// with game clients: md5_hex(base64(strip_whitespace(body || secret))).
// MD5 here is a wire contract with existing clients, not a security
// primitive choice.
package signing

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"unicode"
)

// Sign computes the signature for a request body under the given secret.
// All Unicode whitespace is stripped from the concatenated payload first,
// so clients are free to pretty-print their JSON.
func Sign(body []byte, secret string) string {
	payload := strings.Map(dropSpace, string(body)+secret)
	encoded := base64.StdEncoding.EncodeToString([]byte(payload))
	sum := md5.Sum([]byte(encoded))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether signature matches the body under the secret.
func Verify(body []byte, secret, signature string) bool {
	return signature != "" && signature == Sign(body, secret)
}

func dropSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	return r
}
