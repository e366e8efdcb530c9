// Package database contains pure functions for planning a database-service
// scaffold: the service definition, its dedicated internal network, and the
// secrets wired into the service environment via *_FILE references.
package database

import (
	"errors"
	"fmt"

	"github.com/margey/composify/internal/core/service"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	ErrUnknownEngine = errors.New("unknown database engine")
)

// =============================================================================
// Engine Catalog
// =============================================================================

// Engine describes one supported database engine.
type Engine struct {
	Name     string
	Image    string
	Port     int
	DataPath string
}

// Engines lists the supported engines in menu order.
var Engines = []Engine{
	{Name: "postgres", Image: "postgres:16", Port: 5432, DataPath: "/var/lib/postgresql/data"},
	{Name: "mariadb", Image: "mariadb:11", Port: 3306, DataPath: "/var/lib/mysql"},
}

// EngineByName returns the named engine.
func EngineByName(name string) (Engine, error) {
	for _, e := range Engines {
		if e.Name == name {
			return e, nil
		}
	}
	return Engine{}, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}

// =============================================================================
// Scaffold Planning
// =============================================================================

// Plan is the computed database scaffold for one application.
type Plan struct {
	ServiceName string
	NetworkName string
	// SecretNames in emission order; values come from the user.
	SecretNames []string
	// Service is ready for projection.
	Service service.Service
}

// NewPlan computes the scaffold for an application. The service joins only
// the dedicated network, carries the app and "all" profiles, and reads its
// credentials from mounted secret files.
func NewPlan(appName, serviceName string, engine Engine) (Plan, error) {
	if serviceName == "" {
		serviceName = appName + "-db"
	}
	networkName := appName + "-db"
	passwordSecret := appName + "_db_password"

	env := map[string]string{
		"PUID": "$PUID",
		"PGID": "$PGID",
		"TZ":   "$TZ",
	}
	secretNames := []string{passwordSecret}

	switch engine.Name {
	case "postgres":
		env["POSTGRES_USER"] = appName
		env["POSTGRES_DB"] = appName
		env["POSTGRES_PASSWORD_FILE"] = secretMount(passwordSecret)
	case "mariadb":
		rootSecret := appName + "_db_root_password"
		secretNames = append(secretNames, rootSecret)
		env["MARIADB_USER"] = appName
		env["MARIADB_DATABASE"] = appName
		env["MARIADB_PASSWORD_FILE"] = secretMount(passwordSecret)
		env["MARIADB_ROOT_PASSWORD_FILE"] = secretMount(rootSecret)
	default:
		return Plan{}, fmt.Errorf("%w: %q", ErrUnknownEngine, engine.Name)
	}

	svc, err := service.New(service.Params{
		Name:          serviceName,
		Image:         engine.Image,
		ContainerPath: engine.DataPath,
		Profiles:      []string{appName},
		InternalPort:  engine.Port,
		Environment:   env,
		ExtraNetworks: []string{networkName},
		Secrets:       secretNames,
	})
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		ServiceName: serviceName,
		NetworkName: networkName,
		SecretNames: secretNames,
		Service:     svc,
	}, nil
}

// GroupComment is the header attached to the app's secrets in the main
// compose file.
func (p Plan) GroupComment(appTitle string) string {
	return appTitle + " database"
}

func secretMount(name string) string {
	return "/run/secrets/" + name
}
