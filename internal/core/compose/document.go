package compose

import (
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Document Helpers
// =============================================================================

// NewDocument returns an empty compose document: a document node holding an
// empty mapping.
func NewDocument() *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}
}

// Root returns the top-level mapping of a document, materializing it for
// documents that decoded to null (empty files).
func Root(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.MappingNode {
		return doc
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		doc.Kind = yaml.DocumentNode
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	return doc.Content[0]
}

// lookup returns the value node for key in a mapping, or nil.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// lookupKey returns the key node for key in a mapping, or nil.
func lookupKey(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i]
		}
	}
	return nil
}

// setKey replaces the value for key in place if present (preserving the key
// node and its comments), or appends the pair. Returns the key node.
func setKey(mapping *yaml.Node, key string, value *yaml.Node) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return mapping.Content[i]
		}
	}
	keyNode := strNode(key)
	mapping.Content = append(mapping.Content, keyNode, value)
	return keyNode
}

// ensureMapping returns the mapping under key, creating an empty one when the
// key is absent. A present key of the wrong kind is an error.
func ensureMapping(root *yaml.Node, key string) (*yaml.Node, error) {
	node := lookup(root, key)
	if node == nil {
		node = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		setKey(root, key, node)
		return node, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, NewSectionError(key, "is not a mapping", ErrNotMapping)
	}
	return node, nil
}

// mappingKeys returns the keys of a mapping in document order.
func mappingKeys(mapping *yaml.Node) []string {
	keys := make([]string, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	return keys
}

// =============================================================================
// Node Constructors
// =============================================================================

func strNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func boolNode(value bool) *yaml.Node {
	v := "false"
	if value {
		v = "true"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v}
}
