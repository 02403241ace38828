// Package metadata parses Python package metadata files (METADATA,
// PKG-INFO, WHEEL): a header section of name/value fields, optionally
// followed by a blank line and a free-form body. Parsing is lexical
// only; whether the field values mean anything is someone else's job.
package metadata

// A METADATA file is allegedly an RFC822 email message. It is not. The
// real format is whatever Python's email.message_from_string accepts,
// which differs in ways that matter here:
//
//   - continuation lines keep their newlines; RFC822 folds them to spaces
//   - a line ending is any one of \r\n, \r or \n, not just \r\n
//   - the whitespace classes are slightly different
//
// The grammar is unambiguous: at each position at most one production
// applies, so a single forward pass with one byte of lookahead after a
// line ending is enough. We are stricter than Python's email module in
// that an empty field name or a continuation line at the start of input
// is an error rather than silently tolerated.

// Parse parses the complete contents of a metadata file. It either
// consumes and explains the whole input or fails with a *ParseError;
// there is no best-effort mode. Parse never mutates input and allocates
// only its own output, so it is safe to call concurrently.
func Parse(input string) (*Document, error) {
	s := &scanner{input: input, line: 1, col: 1}
	doc := &Document{Fields: make(Fields)}

	// Header section: one or more fields, separated by single
	// (non-continuation) line endings.
	for {
		name, err := s.fieldName()
		if err != nil {
			return nil, err
		}
		if err := s.fieldSeparator(); err != nil {
			return nil, err
		}
		value := s.fieldValue()
		doc.Fields[name] = append(doc.Fields[name], value)

		// fieldValue stops only at EOF or at a line ending that does
		// not open a continuation line.
		if s.eof() {
			// Input ends right after the last value, with no trailing
			// line ending at all. Legal, and there is no body.
			return doc, nil
		}
		if err := s.lineEnding(); err != nil {
			return nil, err
		}
		if s.eof() {
			return doc, nil
		}
		if s.lineEndingLen() > 0 {
			// A second consecutive line ending ends the header section.
			// Everything after it is the body, verbatim -- even when
			// that is the empty string.
			if err := s.lineEnding(); err != nil {
				return nil, err
			}
			body := s.input[s.pos:]
			doc.Body = &body
			return doc, nil
		}
	}
}

// isFieldNameByte reports whether c may appear in a field name:
// printable ASCII minus space (0x20) and colon (0x3a). Bytes above
// 0x7e are excluded, which also keeps multi-byte UTF-8 sequences out
// of names.
func isFieldNameByte(c byte) bool {
	return c >= 0x21 && c <= 0x7e && c != ':'
}

// scanner walks the input byte-wise, tracking position for diagnostics.
// Byte-wise scanning is safe here because every byte the grammar
// dispatches on is ASCII; arbitrary UTF-8 passes through field values
// untouched.
type scanner struct {
	input string
	pos   int
	line  int // 1-based
	col   int // 1-based, in bytes since the start of the line
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) fail(expected string) *ParseError {
	return &ParseError{Offset: s.pos, Line: s.line, Column: s.col, Expected: expected}
}

// lineEndingLen returns the width of the line-ending token at the
// current position: 2 for \r\n, 1 for a lone \r or \n, 0 otherwise.
// Each of the three forms is a single complete token; longer runs are
// multiple tokens.
func (s *scanner) lineEndingLen() int {
	if s.eof() {
		return 0
	}
	switch s.input[s.pos] {
	case '\n':
		return 1
	case '\r':
		if s.pos+1 < len(s.input) && s.input[s.pos+1] == '\n' {
			return 2
		}
		return 1
	}
	return 0
}

func (s *scanner) lineEnding() error {
	n := s.lineEndingLen()
	if n == 0 {
		return s.fail("end of line")
	}
	s.pos += n
	s.line++
	s.col = 1
	return nil
}

// fieldName consumes one or more field-name bytes. Scanning stops at
// the first byte outside the class, so a name can never be empty or
// contain a line ending.
func (s *scanner) fieldName() (string, error) {
	start := s.pos
	for s.pos < len(s.input) && isFieldNameByte(s.input[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return "", s.fail("field name")
	}
	s.col += s.pos - start
	return s.input[start:s.pos], nil
}

// fieldSeparator consumes a colon plus any run of spaces and tabs.
// The separator is discarded; it is not part of the value.
func (s *scanner) fieldSeparator() error {
	if s.eof() || s.input[s.pos] != ':' {
		return s.fail("field separator")
	}
	s.pos++
	s.col++
	for s.pos < len(s.input) && (s.input[s.pos] == ' ' || s.input[s.pos] == '\t') {
		s.pos++
		s.col++
	}
	return nil
}

// fieldValue consumes value-line pieces joined by continuation markers
// and returns the verbatim span: a line ending followed by a space or
// tab does not end the value, and both the line ending and the
// triggering space/tab stay inside it. The value ends at the first
// line ending not followed by space/tab, or at end of input. A value
// may be empty.
func (s *scanner) fieldValue() string {
	start := s.pos
	for !s.eof() {
		n := s.lineEndingLen()
		if n == 0 {
			s.pos++
			s.col++
			continue
		}
		next := s.pos + n
		if next >= len(s.input) || (s.input[next] != ' ' && s.input[next] != '\t') {
			break
		}
		// Continuation: keep the line ending in the value and carry on.
		s.pos = next
		s.line++
		s.col = 1
	}
	return s.input[start:s.pos]
}
