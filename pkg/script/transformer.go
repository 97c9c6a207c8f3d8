package script

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/praetorian-inc/lsed/pkg/regex"
)

// ErrQuit is returned by the quit transformer. It ends the run successfully.
var ErrQuit = errors.New("quit")

// TransformerKind selects the variant of a Transformer.
type TransformerKind int

const (
	TransformDelete TransformerKind = iota
	TransformPrint
	TransformSubstitute
	TransformQuit
)

func (k TransformerKind) String() string {
	switch k {
	case TransformDelete:
		return "delete"
	case TransformPrint:
		return "print"
	case TransformSubstitute:
		return "substitute"
	case TransformQuit:
		return "quit"
	default:
		return fmt.Sprintf("TransformerKind(%d)", int(k))
	}
}

// Transformer is the action a command performs on a selected line.
// Find, Replace and Global are only set for TransformSubstitute.
type Transformer struct {
	Kind    TransformerKind
	Find    regex.Regex
	Replace string
	Global  bool
}

// Delete returns a transformer that empties the line.
func Delete() Transformer {
	return Transformer{Kind: TransformDelete}
}

// Print returns a transformer that copies the line to the side output.
func Print() Transformer {
	return Transformer{Kind: TransformPrint}
}

// Quit returns a transformer that stops the run.
func Quit() Transformer {
	return Transformer{Kind: TransformQuit}
}

// Substitute returns a transformer replacing the first (or, if global, every)
// match of find with the replace template.
func Substitute(find regex.Regex, replace string, global bool) Transformer {
	return Transformer{Kind: TransformSubstitute, Find: find, Replace: replace, Global: global}
}

// Apply runs the transformer against text. Print writes to side; nothing else
// writes. The quit transformer returns ErrQuit and leaves text alone.
func (t *Transformer) Apply(text *string, side io.Writer) error {
	switch t.Kind {
	case TransformDelete:
		*text = ""
		return nil
	case TransformPrint:
		if _, err := io.WriteString(side, *text); err != nil {
			return fmt.Errorf("printing line: %w", err)
		}
		return nil
	case TransformSubstitute:
		out, err := t.Find.Replace(*text, t.Replace, t.Global)
		if err != nil {
			return err
		}
		*text = out
		return nil
	case TransformQuit:
		return ErrQuit
	default:
		panic(fmt.Sprintf("script: unhandled transformer kind %v", t.Kind))
	}
}

// String renders the transformer in script syntax.
func (t *Transformer) String() string {
	switch t.Kind {
	case TransformDelete:
		return "d"
	case TransformPrint:
		return "p"
	case TransformQuit:
		return "q"
	case TransformSubstitute:
		var b strings.Builder
		b.WriteString("s/")
		b.WriteString(escapeDelimiter(t.Find.String()))
		b.WriteByte('/')
		b.WriteString(escapeDelimiter(t.Replace))
		b.WriteByte('/')
		if t.Global {
			b.WriteByte('g')
		}
		return b.String()
	default:
		return fmt.Sprintf("TransformerKind(%d)", int(t.Kind))
	}
}

func escapeDelimiter(s string) string {
	return strings.ReplaceAll(s, "/", `\/`)
}
