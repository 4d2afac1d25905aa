package guest

import "strings"

// snakeName converts a codec name to the form used in export names.
// Examples:
//   - "IntentMessage" -> "intent_message"
//   - "AsrTokenDoubleArray" -> "asr_token_double_array"
//   - "Text" -> "text"
func snakeName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
