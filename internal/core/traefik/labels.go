package traefik

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Traefik Label Generation Functions
// =============================================================================

// RouteLabels generates Traefik reverse proxy labels for an exposed service.
//
// The generated labels configure Traefik to route HTTPS traffic to the container:
//   - Enables Traefik for the container
//   - Creates a router with a Host rule for <name>.${DOMAINNAME} on the
//     web-secure entrypoint
//   - Configures the service loadbalancer port
//   - If a middleware chain is set, attaches it as <chain>@file
//
// Router and service names follow the pattern: {name}-rtr and {name}-svc.
//
// Example:
//
//	labels := RouteLabels(RouteParams{ServiceName: "jellyfin", Port: 8096})
//	// Returns, in order:
//	// traefik.enable: "true"
//	// traefik.http.routers.jellyfin-rtr.entrypoints: "web-secure"
//	// traefik.http.routers.jellyfin-rtr.rule: "Host(`jellyfin.${DOMAINNAME}`)"
//	// traefik.http.routers.jellyfin-rtr.service: "jellyfin-svc"
//	// traefik.http.services.jellyfin-svc.loadbalancer.server.port: "8096"
func RouteLabels(params RouteParams) []Label {
	n := params.ServiceName

	labels := []Label{
		// Enable Traefik for this container
		{Key: "traefik.enable", Value: "true"},

		// HTTPS router
		{Key: fmt.Sprintf("traefik.http.routers.%s-rtr.entrypoints", n), Value: "web-secure"},
		{Key: fmt.Sprintf("traefik.http.routers.%s-rtr.rule", n), Value: fmt.Sprintf("Host(`%s.${DOMAINNAME}`)", n)},
		{Key: fmt.Sprintf("traefik.http.routers.%s-rtr.service", n), Value: fmt.Sprintf("%s-svc", n)},

		// Service (loadbalancer port)
		{Key: fmt.Sprintf("traefik.http.services.%s-svc.loadbalancer.server.port", n), Value: fmt.Sprintf("%d", params.Port)},
	}

	// Attach the middleware chain if one was selected
	if params.Middleware != "" {
		labels = append(labels, Label{
			Key:   fmt.Sprintf("traefik.http.routers.%s-rtr.middlewares", n),
			Value: fmt.Sprintf("%s@file", params.Middleware),
		})
	}

	return labels
}

// =============================================================================
// Middleware Chain Discovery
// =============================================================================

// middlewareFile mirrors the subset of a Traefik dynamic configuration file
// needed to enumerate chain names.
type middlewareFile struct {
	HTTP struct {
		Middlewares map[string]yaml.Node `yaml:"middlewares"`
	} `yaml:"http"`
}

// MiddlewareChains parses a Traefik middleware-definitions file and returns
// the chain names found under http.middlewares, sorted alphabetically.
// Malformed or empty content yields an empty list, not an error: the caller
// falls back to free-form input.
func MiddlewareChains(content []byte) []string {
	var file middlewareFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil
	}

	names := make([]string, 0, len(file.HTTP.Middlewares))
	for name := range file.HTTP.Middlewares {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
