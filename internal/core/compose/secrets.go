package compose

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Secret Mutators
// =============================================================================

// UpsertSecrets registers secret names in the document's top-level secrets
// mapping as file references:
//
//	secrets:
//	  # <groupComment>
//	  <name>:
//	    file: ./secrets/<name>
//
// Names already present are left untouched. The whole secrets mapping is kept
// sorted alphabetically by key after insertion; the group comment is attached
// to the first newly inserted name. Returns the names actually added.
func UpsertSecrets(doc *yaml.Node, groupComment string, names []string) ([]string, error) {
	secrets, err := ensureMapping(Root(doc), "secrets")
	if err != nil {
		return nil, err
	}

	var added []string
	for _, name := range names {
		if lookup(secrets, name) != nil {
			continue
		}
		entry := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		setKey(entry, "file", strNode(fmt.Sprintf("./secrets/%s", name)))
		keyNode := setKey(secrets, name, entry)
		if groupComment != "" && len(added) == 0 {
			keyNode.HeadComment = groupComment
		}
		added = append(added, name)
	}

	if len(added) > 0 {
		sortMapping(secrets)
	}
	return added, nil
}

// SecretNames returns the registered secret names in document order.
func SecretNames(doc *yaml.Node) []string {
	secrets := lookup(Root(doc), "secrets")
	if secrets == nil || secrets.Kind != yaml.MappingNode {
		return nil
	}
	return mappingKeys(secrets)
}

// sortMapping reorders a mapping's key/value pairs alphabetically by key.
// Comments travel with their key nodes.
func sortMapping(mapping *yaml.Node) {
	type pair struct {
		key   *yaml.Node
		value *yaml.Node
	}
	pairs := make([]pair, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		pairs = append(pairs, pair{key: mapping.Content[i], value: mapping.Content[i+1]})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].key.Value < pairs[j].key.Value
	})

	content := make([]*yaml.Node, 0, len(mapping.Content))
	for _, p := range pairs {
		content = append(content, p.key, p.value)
	}
	mapping.Content = content
}
