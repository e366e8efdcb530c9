package service

import (
	"fmt"
	"sort"

	"github.com/margey/composify/internal/core/traefik"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// YAML Projection
// =============================================================================

// envKeyOrder fixes the emission order of the default environment variables;
// any other keys follow, sorted alphabetically.
var envKeyOrder = []string{"PUID", "PGID", "TZ"}

// Project derives the compose YAML value for the service as a yaml.v3 mapping
// node. Key order is fixed: image, container_name, restart, profiles,
// networks, volumes, environment, secrets, labels, ports. Keys whose value
// would be empty are omitted entirely. Exactly one of labels or ports is
// present, gated by Expose. proxyNetwork names the shared reverse-proxy
// network joined by exposed services.
func Project(s Service, proxyNetwork string) *yaml.Node {
	node := mappingNode()

	appendKV(node, "image", scalarNode(s.Image))
	appendKV(node, "container_name", scalarNode(s.ContainerName))
	appendKV(node, "restart", scalarNode(string(s.Restart)))
	appendKV(node, "profiles", sequenceNode(s.Profiles))

	if networks := s.networks(proxyNetwork); len(networks) > 0 {
		appendKV(node, "networks", sequenceNode(networks))
	}

	appendKV(node, "volumes", sequenceNode(s.volumes()))

	if len(s.Environment) > 0 {
		appendKV(node, "environment", s.environmentNode())
	}

	if len(s.Secrets) > 0 {
		appendKV(node, "secrets", sequenceNode(s.Secrets))
	}

	if s.Expose {
		appendKV(node, "labels", labelsNode(traefik.RouteLabels(traefik.RouteParams{
			ServiceName: s.Name,
			Port:        s.InternalPort,
			Middleware:  s.Middleware,
		})))
	} else {
		appendKV(node, "ports", sequenceNode(s.ports()))
	}

	return node
}

// volumes derives the single bind mount for the service's config directory.
func (s Service) volumes() []string {
	return []string{fmt.Sprintf("${DOCKERDIR}/%s:%s", s.Name, s.ContainerPath)}
}

// networks derives the networks list: the proxy network when exposed,
// followed by any extra networks (database scaffold).
func (s Service) networks(proxyNetwork string) []string {
	var out []string
	if s.Expose {
		out = append(out, proxyNetwork)
	}
	out = append(out, s.ExtraNetworks...)
	return out
}

// ports derives the host:container mapping used when not exposed.
func (s Service) ports() []string {
	return []string{fmt.Sprintf("%d:%d", s.ExternalPort, s.InternalPort)}
}

// environmentNode emits the environment mapping with PUID/PGID/TZ first in
// their conventional order and remaining keys sorted.
func (s Service) environmentNode() *yaml.Node {
	node := mappingNode()
	emitted := make(map[string]bool, len(s.Environment))

	for _, k := range envKeyOrder {
		if v, ok := s.Environment[k]; ok {
			appendKV(node, k, scalarNode(v))
			emitted[k] = true
		}
	}

	rest := make([]string, 0, len(s.Environment))
	for k := range s.Environment {
		if !emitted[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		appendKV(node, k, scalarNode(s.Environment[k]))
	}

	return node
}

func labelsNode(labels []traefik.Label) *yaml.Node {
	node := mappingNode()
	for _, l := range labels {
		appendKV(node, l.Key, scalarNode(l.Value))
	}
	return node
}

// =============================================================================
// yaml.Node Constructors
// =============================================================================

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func sequenceNode(values []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		node.Content = append(node.Content, scalarNode(v))
	}
	return node
}

func appendKV(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, scalarNode(key), value)
}
