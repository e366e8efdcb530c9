package service

import (
	"strings"
)

// =============================================================================
// Construction
// =============================================================================

// New builds a normalized Service from raw user input.
// Normalization happens in a fixed order: profiles are flattened on commas,
// trimmed, deduplicated first-seen, and "all" is ensured exactly once;
// container name defaults to the service name; the external port defaults to
// the internal port; environment defaults to the PUID/PGID/TZ placeholders.
func New(p Params) (Service, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Service{}, NewFieldError("name", "service name is required", ErrEmptyName)
	}
	if strings.TrimSpace(p.Image) == "" {
		return Service{}, NewFieldError("image", "image is required", ErrEmptyImage)
	}
	if strings.TrimSpace(p.ContainerPath) == "" {
		return Service{}, NewFieldError("container_path", "container path is required", ErrEmptyPath)
	}
	if p.InternalPort <= 0 || p.InternalPort > 65535 {
		return Service{}, NewFieldError("internal_port", "internal port must be 1..65535", ErrInvalidPort)
	}
	if p.ExternalPort < 0 || p.ExternalPort > 65535 {
		return Service{}, NewFieldError("external_port", "external port must be 1..65535", ErrInvalidPort)
	}

	restart := p.Restart
	if restart == "" {
		restart = string(RestartUnlessStopped)
	}
	if !ValidRestartPolicy(restart) {
		return Service{}, NewFieldError("restart", "must be one of: always, unless-stopped, on-failure, no", ErrInvalidRestart)
	}

	external := p.ExternalPort
	if p.Expose {
		// External port is meaningless behind the proxy.
		external = 0
	} else if external == 0 {
		external = p.InternalPort
	}

	middleware := p.Middleware
	if !p.Expose {
		// Middleware chains only apply to proxied services.
		middleware = ""
	}

	containerName := strings.TrimSpace(p.ContainerName)
	if containerName == "" {
		containerName = strings.TrimSpace(p.Name)
	}

	env := p.Environment
	if env == nil {
		env = DefaultEnvironment()
	}

	return Service{
		Name:          strings.TrimSpace(p.Name),
		Image:         strings.TrimSpace(p.Image),
		ContainerPath: strings.TrimSpace(p.ContainerPath),
		Profiles:      NormalizeProfiles(p.Profiles),
		Restart:       RestartPolicy(restart),
		Expose:        p.Expose,
		InternalPort:  p.InternalPort,
		ExternalPort:  external,
		Middleware:    middleware,
		ContainerName: containerName,
		Environment:   env,
		ExtraNetworks: append([]string(nil), p.ExtraNetworks...),
		Secrets:       append([]string(nil), p.Secrets...),
	}, nil
}

// NormalizeProfiles flattens comma-separated tokens, trims whitespace, drops
// empty entries, removes duplicates preserving first-seen order, and ensures
// "all" is present exactly once.
func NormalizeProfiles(raw []string) []string {
	var flat []string
	for _, item := range raw {
		for _, tok := range strings.Split(item, ",") {
			if t := strings.TrimSpace(tok); t != "" {
				flat = append(flat, t)
			}
		}
	}
	flat = append(flat, "all")

	seen := make(map[string]bool, len(flat))
	out := make([]string, 0, len(flat))
	for _, p := range flat {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// PrimaryProfileTitle returns the first profile other than "all" with its
// first letter upper-cased, falling back to the capitalized service name.
// Used as the include-list comment in the main compose file.
func (s Service) PrimaryProfileTitle() string {
	for _, p := range s.Profiles {
		if !strings.EqualFold(p, "all") {
			return title(p)
		}
	}
	return title(s.Name)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
