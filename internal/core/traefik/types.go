package traefik

// =============================================================================
// Traefik Label Generation Types
// =============================================================================

// Label is a single compose label as an ordered key/value pair.
// A slice of Labels preserves emission order, unlike a map.
type Label struct {
	Key   string
	Value string
}

// RouteParams contains parameters for generating routing labels.
type RouteParams struct {
	// ServiceName is the compose service name (e.g., "jellyfin").
	// It becomes the router name prefix and the routed hostname.
	ServiceName string

	// Port is the container port Traefik forwards traffic to.
	Port int

	// Middleware is an optional middleware chain name. When set, the router
	// references "<Middleware>@file".
	Middleware string
}
