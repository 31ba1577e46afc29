// Package textarea provides a single-line text buffer with a cursor and an
// input-method composition overlay.
//
// The buffer is a sequence of code points. The cursor and every preedit
// offset are counted in code points, never bytes, so multi-byte characters
// are always moved over and deleted as a unit.
//
// Composition Model:
//
// While an input method is composing, the host supplies preedit text that
// is shown at the cursor but is not part of the buffer. The preedit carries
// a [start, end) range relative to its own text:
//
//   - start == end: a caret inside the preedit
//   - start < end: a highlighted span (the segment being converted)
//
// Committing a character always discards the preedit before the edit is
// applied.
//
// Rendering:
//
// Line composes the buffer, preedit and caret into styled segments; Render
// encodes the same line with ANSI escapes:
//
//	st := textarea.New()
//	st.InsertBeforeCursor('a')
//	st.InsertBeforeCursor('b')
//	st.MoveLeft()
//	_ = st.SetPreedit("x", nil, nil)
//	fmt.Print(st.Render()) // a, underlined+reversed x, b
//
// Thread Safety:
//
// State is not safe for concurrent use. It is owned by one event loop.
package textarea
