package channel

// Telegram rejects messages longer than 4096 characters.
const maxMessageLen = 4096

// chunkText splits text into consecutive rune chunks of at most limit
// characters. Every chunk except possibly the last is exactly limit long;
// concatenating the chunks reproduces the input with no overlap or gap.
func chunkText(text string, limit int) []string {
	if limit <= 0 {
		limit = maxMessageLen
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
