package metadata

// Fields maps a header field name to the values recorded for it.
// Duplicate field names are legal in a metadata file; each occurrence
// appends to the same key, so a key's slice preserves the order in
// which its values appeared. A present key always has at least one value.
type Fields map[string][]string

// First returns the first value recorded for name.
func (f Fields) First(name string) (string, bool) {
	values := f[name]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// All returns every value recorded for name, in order of appearance.
// The returned slice is a copy and may be mutated freely.
func (f Fields) All(name string) []string {
	values := f[name]
	if len(values) == 0 {
		return nil
	}
	return append([]string(nil), values...)
}

// clone deep-copies the map and its value slices.
func (f Fields) clone() Fields {
	out := make(Fields, len(f))
	for name, values := range f {
		out[name] = append([]string(nil), values...)
	}
	return out
}

// Document is one fully parsed metadata file (METADATA, PKG-INFO or
// WHEEL): the header fields plus the optional free-form body that
// follows the header's blank line. A nil Body means the file had no
// body separator at all; a non-nil pointer to "" means the separator
// was there but nothing followed it.
//
// Documents are built in one shot by Parse and never mutated afterward.
type Document struct {
	Fields Fields  `json:"fields" yaml:"fields"`
	Body   *string `json:"body,omitempty" yaml:"body,omitempty"`
}

// DescriptionField is the core-metadata key the body folds into.
const DescriptionField = "Description"

// CoreMetadata is the metadata-aware view of a Document: the body, if
// any, has been folded into the Description field, after any values a
// literal Description: header already contributed.
type CoreMetadata struct {
	Fields Fields `json:"fields" yaml:"fields"`
}

// NewCoreMetadata derives the core-metadata view from a parsed document.
// It copies the fields, so the document stays untouched. Folding a
// document without a body changes nothing, so deriving the view from an
// already-folded field set is a no-op.
func NewCoreMetadata(doc *Document) CoreMetadata {
	fields := doc.Fields.clone()
	if doc.Body != nil {
		fields[DescriptionField] = append(fields[DescriptionField], *doc.Body)
	}
	return CoreMetadata{Fields: fields}
}

// ParseCoreMetadata parses input and folds the body in one step.
func ParseCoreMetadata(input string) (CoreMetadata, error) {
	doc, err := Parse(input)
	if err != nil {
		return CoreMetadata{}, err
	}
	return NewCoreMetadata(doc), nil
}
