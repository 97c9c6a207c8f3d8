package types

// ComputeLineColumn computes line and column numbers from a byte offset in content.
// Lines and columns are 1-indexed (first line is 1, first column is 1).
func ComputeLineColumn(content string, byteOffset int) (line, column int) {
	line = 1
	column = 1
	for i := 0; i < byteOffset && i < len(content); i++ {
		if content[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// LineAt returns the line of content containing byteOffset, without its newline.
func LineAt(content string, byteOffset int) string {
	if byteOffset > len(content) {
		byteOffset = len(content)
	}
	start := byteOffset
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := byteOffset
	for end < len(content) && content[end] != '\n' {
		end++
	}
	return content[start:end]
}
