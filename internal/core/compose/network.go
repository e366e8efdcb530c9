package compose

import (
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Network Mutators
// =============================================================================

// UpsertNetwork sets the named entry in the document's top-level networks
// mapping, creating the mapping when absent and replacing any prior entry of
// the same name:
//
//	networks:
//	  <name>:
//	    name: <name>
//	    internal: <internal>
//	    ipam:
//	      config:
//	        - subnet: <subnet>
func UpsertNetwork(doc *yaml.Node, name, subnet string, internal bool) error {
	networks, err := ensureMapping(Root(doc), "networks")
	if err != nil {
		return err
	}

	entry := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	setKey(entry, "name", strNode(name))
	setKey(entry, "internal", boolNode(internal))

	ipamConfig := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	setKey(ipamConfig, "subnet", strNode(subnet))
	ipam := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	setKey(ipam, "config", &yaml.Node{
		Kind:    yaml.SequenceNode,
		Tag:     "!!seq",
		Content: []*yaml.Node{ipamConfig},
	})
	setKey(entry, "ipam", ipam)

	setKey(networks, name, entry)
	return nil
}

// UsedSubnets collects every networks.*.ipam.config[].subnet value in the
// document, for subnet allocation.
func UsedSubnets(doc *yaml.Node) map[string]struct{} {
	used := make(map[string]struct{})

	networks := lookup(Root(doc), "networks")
	if networks == nil || networks.Kind != yaml.MappingNode {
		return used
	}

	for i := 1; i < len(networks.Content); i += 2 {
		entry := networks.Content[i]
		if entry.Kind != yaml.MappingNode {
			continue
		}
		ipam := lookup(entry, "ipam")
		if ipam == nil || ipam.Kind != yaml.MappingNode {
			continue
		}
		config := lookup(ipam, "config")
		if config == nil || config.Kind != yaml.SequenceNode {
			continue
		}
		for _, item := range config.Content {
			if item.Kind != yaml.MappingNode {
				continue
			}
			if subnet := lookup(item, "subnet"); subnet != nil && subnet.Value != "" {
				used[subnet.Value] = struct{}{}
			}
		}
	}
	return used
}
