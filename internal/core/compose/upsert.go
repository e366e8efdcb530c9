package compose

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Service Mutators
// =============================================================================

// UpsertService sets or replaces the named service in the document's
// top-level services mapping. The document must already carry a services
// mapping; a missing or malformed section fails with ErrMissingServices /
// ErrNotMapping. An existing service name fails with ErrServiceExists unless
// overwrite is set, in which case the value is replaced in place so the
// service keeps its position and any comment on its key.
func UpsertService(doc *yaml.Node, name string, value *yaml.Node, overwrite bool) error {
	root := Root(doc)

	services := lookup(root, "services")
	if services == nil {
		return NewSectionError("services", "missing top-level 'services:'", ErrMissingServices)
	}
	if services.Kind != yaml.MappingNode {
		return NewSectionError("services", "is not a mapping", ErrNotMapping)
	}

	if lookup(services, name) != nil && !overwrite {
		return fmt.Errorf("%w: %q", ErrServiceExists, name)
	}

	setKey(services, name, value)
	return nil
}

// NewStackDocument builds a fresh single-service stack document:
//
//	services:
//	  <name>: <value>
func NewStackDocument(name string, value *yaml.Node) *yaml.Node {
	doc := NewDocument()
	services := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	setKey(services, name, value)
	setKey(Root(doc), "services", services)
	return doc
}

// ServiceSnippet builds a preview document holding just one service entry,
// without the surrounding services mapping:
//
//	<name>: <value>
func ServiceSnippet(name string, value *yaml.Node) *yaml.Node {
	doc := NewDocument()
	setKey(Root(doc), name, value)
	return doc
}

// ServiceNames returns the service names in document order. A document
// without a services mapping yields nil.
func ServiceNames(doc *yaml.Node) []string {
	services := lookup(Root(doc), "services")
	if services == nil || services.Kind != yaml.MappingNode {
		return nil
	}
	return mappingKeys(services)
}

// AttachNetwork adds a network to the named service's networks sequence,
// creating the sequence when absent. Idempotent: an already attached network
// reports false with no change. An unknown service fails with
// ErrNoSuchService.
func AttachNetwork(doc *yaml.Node, serviceName, network string) (bool, error) {
	root := Root(doc)

	services := lookup(root, "services")
	if services == nil || services.Kind != yaml.MappingNode {
		return false, NewSectionError("services", "missing top-level 'services:'", ErrMissingServices)
	}

	svc := lookup(services, serviceName)
	if svc == nil {
		return false, fmt.Errorf("%w: %q", ErrNoSuchService, serviceName)
	}
	if svc.Kind != yaml.MappingNode {
		return false, NewSectionError("services."+serviceName, "is not a mapping", ErrNotMapping)
	}

	networks := lookup(svc, "networks")
	if networks == nil {
		networks = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		setKey(svc, "networks", networks)
	}
	if networks.Kind != yaml.SequenceNode {
		return false, NewSectionError("services."+serviceName+".networks", "is not a sequence", ErrNotSequence)
	}

	for _, item := range networks.Content {
		if item.Value == network {
			return false, nil
		}
	}
	networks.Content = append(networks.Content, strNode(network))
	return true, nil
}
