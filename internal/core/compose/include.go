package compose

import (
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Include List Mutators
// =============================================================================

// AppendInclude appends a stack file path to the document's top-level include
// sequence. A missing sequence is created as the first key of the document.
// The comment, when non-empty, is attached as a line comment immediately
// preceding the new entry. Idempotent: a string-equal entry already present
// reports false and leaves the document untouched.
func AppendInclude(doc *yaml.Node, relPath, comment string) (bool, error) {
	root := Root(doc)

	include := lookup(root, "include")
	if include == nil {
		include = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		root.Content = append([]*yaml.Node{strNode("include"), include}, root.Content...)
	}
	if include.Kind != yaml.SequenceNode {
		return false, NewSectionError("include", "is not a list", ErrNotSequence)
	}

	for _, item := range include.Content {
		if item.Value == relPath {
			return false, nil
		}
	}

	entry := strNode(relPath)
	entry.HeadComment = comment
	include.Content = append(include.Content, entry)
	return true, nil
}

// IncludePaths returns the include entries in document order. A document
// without an include sequence yields nil.
func IncludePaths(doc *yaml.Node) []string {
	include := lookup(Root(doc), "include")
	if include == nil || include.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(include.Content))
	for _, item := range include.Content {
		out = append(out, item.Value)
	}
	return out
}

// IncludeOnly returns a document holding just the include section, for
// previews. Returns nil when the document has no include sequence.
func IncludeOnly(doc *yaml.Node) *yaml.Node {
	include := lookup(Root(doc), "include")
	if include == nil {
		return nil
	}
	out := NewDocument()
	setKey(Root(out), "include", include)
	return out
}
