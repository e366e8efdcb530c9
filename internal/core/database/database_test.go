package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Engine Tests
// =============================================================================

func TestEngineByName(t *testing.T) {
	engine, err := EngineByName("postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgres:16", engine.Image)
	assert.Equal(t, 5432, engine.Port)

	_, err = EngineByName("oracle")
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

// =============================================================================
// NewPlan Tests
// =============================================================================

func TestNewPlan_Postgres(t *testing.T) {
	engine, err := EngineByName("postgres")
	require.NoError(t, err)

	plan, err := NewPlan("app1", "", engine)
	require.NoError(t, err)

	assert.Equal(t, "app1-db", plan.ServiceName)
	assert.Equal(t, "app1-db", plan.NetworkName)
	assert.Equal(t, []string{"app1_db_password"}, plan.SecretNames)

	svc := plan.Service
	assert.Equal(t, "postgres:16", svc.Image)
	assert.Equal(t, 5432, svc.InternalPort)
	assert.False(t, svc.Expose)
	assert.Equal(t, []string{"app1", "all"}, svc.Profiles)
	assert.Equal(t, []string{"app1-db"}, svc.ExtraNetworks)
	assert.Equal(t, "app1", svc.Environment["POSTGRES_USER"])
	assert.Equal(t, "app1", svc.Environment["POSTGRES_DB"])
	assert.Equal(t, "/run/secrets/app1_db_password", svc.Environment["POSTGRES_PASSWORD_FILE"])
}

func TestNewPlan_Mariadb(t *testing.T) {
	engine, err := EngineByName("mariadb")
	require.NoError(t, err)

	plan, err := NewPlan("app1", "", engine)
	require.NoError(t, err)

	assert.Equal(t, []string{"app1_db_password", "app1_db_root_password"}, plan.SecretNames)

	svc := plan.Service
	assert.Equal(t, "/run/secrets/app1_db_password", svc.Environment["MARIADB_PASSWORD_FILE"])
	assert.Equal(t, "/run/secrets/app1_db_root_password", svc.Environment["MARIADB_ROOT_PASSWORD_FILE"])
	assert.Equal(t, "/var/lib/mysql", svc.ContainerPath)
}

func TestNewPlan_ExplicitServiceName(t *testing.T) {
	engine, err := EngineByName("postgres")
	require.NoError(t, err)

	plan, err := NewPlan("app1", "app1-postgres", engine)
	require.NoError(t, err)

	assert.Equal(t, "app1-postgres", plan.ServiceName)
	// The network stays tied to the app, not the service name.
	assert.Equal(t, "app1-db", plan.NetworkName)
}

func TestNewPlan_UnknownEngine(t *testing.T) {
	_, err := NewPlan("app1", "", Engine{Name: "oracle"})
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

func TestGroupComment(t *testing.T) {
	plan := Plan{}
	assert.Equal(t, "App1 database", plan.GroupComment("App1"))
}
