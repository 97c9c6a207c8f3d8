package types

import "fmt"

// SourcePoint is line:column position (1-based).
type SourcePoint struct {
	Line   int
	Column int
}

func (p SourcePoint) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PointAt returns the position of byteOffset in content.
func PointAt(content string, byteOffset int) SourcePoint {
	line, column := ComputeLineColumn(content, byteOffset)
	return SourcePoint{Line: line, Column: column}
}
