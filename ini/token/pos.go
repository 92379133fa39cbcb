package token

import "fmt"

// Pos identifies a location in an INI source buffer by 1-based line and
// column. Unlike the teacher's PosDoc/Pos (which recomputes line/column
// from a table of stored newline offsets, because it must answer position
// queries for arbitrary byte offsets after the fact in a streaming
// tokenizer), miniconfig parses one bounded buffer start to finish, so a
// [Cursor] can track line/column inline as it advances and there is never
// a need to look a position up after the fact.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Col)
}
