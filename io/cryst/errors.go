package cryst

import "fmt"

// SyntaxError is a malformed-input (InputParse) error produced while
// parsing a crystallographic text file. Line-tracked and Unwrap-capable,
// following cif.CIFSyntaxError/genbank.GenbankSyntaxError.
type SyntaxError struct {
	Line int
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("cryst: syntax error at line %d: %s", e.Line, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (e *SyntaxError) Wrap(format string, a ...any) error {
	return &SyntaxError{Line: e.Line, Msg: fmt.Sprintf(format, a...), Err: e}
}
