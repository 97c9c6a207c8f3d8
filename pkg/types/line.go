package types

// Line is a single record of the input stream as seen by the editing engine.
//
// Text is overwritten in place by transformers while the line is processed;
// nothing retains a Line after the engine moves on.
type Line struct {
	// Number is 1-based and restarts at 1 for every input file.
	Number int

	// Text includes the trailing newline when the source had one.
	Text string

	// IsLast is true only for the final line of the whole stream.
	IsLast bool
}
