package service

// =============================================================================
// Service Types
// =============================================================================

// RestartPolicy represents the container restart policy.
type RestartPolicy string

const (
	RestartNo            RestartPolicy = "no"
	RestartAlways        RestartPolicy = "always"
	RestartOnFailure     RestartPolicy = "on-failure"
	RestartUnlessStopped RestartPolicy = "unless-stopped"
)

// RestartPolicies lists the valid restart policies in menu order.
var RestartPolicies = []RestartPolicy{
	RestartAlways,
	RestartUnlessStopped,
	RestartOnFailure,
	RestartNo,
}

// ValidRestartPolicy reports whether s names a known restart policy.
func ValidRestartPolicy(s string) bool {
	for _, p := range RestartPolicies {
		if string(p) == s {
			return true
		}
	}
	return false
}

// Params holds the raw inputs gathered from the user.
// Profiles entries may contain comma-separated tokens; New flattens them.
type Params struct {
	Name          string
	Image         string
	ContainerPath string
	Profiles      []string
	Restart       string // empty = unless-stopped
	Expose        bool
	InternalPort  int
	ExternalPort  int    // 0 = same as InternalPort; only used when !Expose
	Middleware    string // middleware chain name; only used when Expose
	ContainerName string // empty = Name
	Environment   map[string]string
	ExtraNetworks []string
	Secrets       []string
}

// Service is a fully normalized service definition.
// Construct with New; the zero value is not valid.
type Service struct {
	Name          string
	Image         string
	ContainerPath string
	Profiles      []string // deduped, always contains "all"
	Restart       RestartPolicy
	Expose        bool
	InternalPort  int
	ExternalPort  int
	Middleware    string
	ContainerName string
	Environment   map[string]string
	ExtraNetworks []string
	Secrets       []string
}

// DefaultEnvironment returns the standard environment placeholders applied
// when the caller supplies none.
func DefaultEnvironment() map[string]string {
	return map[string]string{
		"PUID": "$PUID",
		"PGID": "$PGID",
		"TZ":   "$TZ",
	}
}
