package main

// Buffer is the editable text of a window. It is a thin handle over the
// persistent rope: every edit swaps the root, so Clone is free and the clone
// never observes later edits.
//
// Offsets are rune (character) offsets. Bounds are checked by the callers in
// the window and key handling code, not here.

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

// Buffer holds a sequence of characters with line addressing.
type Buffer struct {
	root *ropeNode
}

// NewBuffer returns a buffer holding text.
func NewBuffer(text string) *Buffer {
	return &Buffer{root: buildRope(sanitize(text))}
}

// sanitize replaces invalid UTF-8 so rune counts stay stable when leaves are
// merged.
func sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}

// Clone returns an independent snapshot sharing the current tree.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{root: b.root}
}

// Insert places text before the character at offset.
func (b *Buffer) Insert(offset int, text string) {
	if text == "" {
		return
	}
	l, r := splitRope(b.root, offset)
	b.root = joinRopes(joinRopes(l, buildRope(sanitize(text))), r)
}

// Remove deletes the characters in [start, end).
func (b *Buffer) Remove(start, end int) {
	if start >= end {
		return
	}
	l, rest := splitRope(b.root, start)
	_, r := splitRope(rest, end-start)
	b.root = joinRopes(l, r)
}

// CharAt returns the character at offset, which must be below LenChars.
func (b *Buffer) CharAt(offset int) rune {
	return b.root.charAt(offset)
}

// LenChars returns the number of characters.
func (b *Buffer) LenChars() int {
	if b.root == nil {
		return 0
	}
	return b.root.chars
}

// LenBytes returns the UTF-8 size of the text.
func (b *Buffer) LenBytes() int {
	if b.root == nil {
		return 0
	}
	return b.root.bytes
}

// LineCount returns the number of lines; an empty buffer has one line and a
// trailing newline starts a new, empty line.
func (b *Buffer) LineCount() int {
	if b.root == nil {
		return 1
	}
	return b.root.lines + 1
}

// LineToChar returns the offset of the first character of line. Passing
// LineCount() yields LenChars().
func (b *Buffer) LineToChar(line int) int {
	if line >= b.LineCount() {
		return b.LenChars()
	}
	return b.root.lineStart(line)
}

// CharToLine returns the line containing offset.
func (b *Buffer) CharToLine(offset int) int {
	return b.root.newlinesBefore(offset)
}

// CharToByte returns the byte offset of the character at offset.
func (b *Buffer) CharToByte(offset int) int {
	return b.root.bytesBefore(offset)
}

// Line returns line i including its trailing newline, if any.
func (b *Buffer) Line(i int) string {
	return b.Slice(b.LineToChar(i), b.LineToChar(i+1))
}

// LineLen returns the number of characters on line i, not counting the line
// break.
func (b *Buffer) LineLen(i int) int {
	start := b.LineToChar(i)
	end := b.LineToChar(i + 1)
	if i+1 < b.LineCount() {
		end--
	}
	return end - start
}

// Slice returns the characters in [start, end).
func (b *Buffer) Slice(start, end int) string {
	var sb strings.Builder
	b.root.appendRange(&sb, start, end)
	return sb.String()
}

// String returns the whole text.
func (b *Buffer) String() string {
	return b.Slice(0, b.LenChars())
}

// Bytes returns the whole text as a fresh byte slice.
func (b *Buffer) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(b.LenBytes())
	b.root.writeTo(&buf)
	return buf.Bytes()
}

// WriteTo streams the text to w leaf by leaf.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	return b.root.writeTo(w)
}

// InsertAt inserts text at column col of line. It reports false, leaving the
// buffer untouched, when line does not exist.
func (b *Buffer) InsertAt(line, col int, text string) bool {
	if line >= b.LineCount() {
		return false
	}
	b.Insert(b.LineToChar(line)+col, text)
	return true
}

// InsertNewLines inserts n line breaks at column col of line.
func (b *Buffer) InsertNewLines(line, col, n int) {
	if n <= 0 {
		return
	}
	b.Insert(b.LineToChar(line)+col, strings.Repeat("\n", n))
}

// AppendNewLines adds n line breaks at the end of the text.
func (b *Buffer) AppendNewLines(n int) {
	if n <= 0 {
		return
	}
	b.Insert(b.LenChars(), strings.Repeat("\n", n))
}

// AppendAtLine appends text to the end of line, before its line break.
func (b *Buffer) AppendAtLine(line int, text string) {
	b.InsertAt(line, b.LineLen(line), text)
}
