package extractor

import "strings"

// decodePlainText interprets bytes as UTF-8, substituting the replacement
// character for invalid sequences instead of failing.
func decodePlainText(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}
