package schema

import "strings"

// ExtractHeader splits a document into its metadata header and body.
// The header is the first contiguous block delimited by lines that are
// exactly "---" (optional trailing CR) at the very start of the text.
// Without an opening or closing delimiter the document has no header
// and the body is the full text.
func ExtractHeader(text string) (header string, body string, ok bool) {
	rest, found := cutDelimiterLine(text)
	if !found {
		return "", text, false
	}

	lines := strings.SplitAfter(rest, "\n")
	var headerBuilder strings.Builder
	consumed := 0
	for _, line := range lines {
		consumed += len(line)
		if isDelimiterLine(line) {
			return headerBuilder.String(), rest[consumed:], true
		}
		headerBuilder.WriteString(line)
	}
	return "", text, false
}

// cutDelimiterLine consumes a leading "---" line, returning the text
// after its newline.
func cutDelimiterLine(text string) (string, bool) {
	idx := strings.IndexByte(text, '\n')
	if idx == -1 {
		return "", false
	}
	if !isDelimiterLine(text[:idx+1]) {
		return "", false
	}
	return text[idx+1:], true
}

func isDelimiterLine(line string) bool {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line == "---"
}
