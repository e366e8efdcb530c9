// Package traefik provides pure functions for generating Traefik reverse proxy labels.
//
// This package contains the functional core logic for generating the compose
// labels that configure Traefik routing, and for listing middleware chain
// names out of a Traefik dynamic-configuration file. All functions are pure
// (no I/O, no side effects).
//
// # Functions
//
//   - RouteLabels: Generate Traefik labels for HTTPS routing of one service
//   - MiddlewareChains: List chain names defined under http.middlewares
//
// # Usage
//
// The service projection uses these labels when a service is exposed:
//
//	labels := traefik.RouteLabels(traefik.RouteParams{
//	    ServiceName: "jellyfin",
//	    Port:        8096,
//	    Middleware:  "chain-no-auth",
//	})
//
// Labels are returned as an ordered slice so the emitted YAML is stable.
package traefik
