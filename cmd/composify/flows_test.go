package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margey/composify/internal/shell/prompt"
)

// =============================================================================
// Test Helpers
// =============================================================================

// newTestApp wires an App against a temporary docker root and scripted
// prompt input. All interactive output goes to the returned buffer.
func newTestApp(t *testing.T, root, input string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &Config{
		Root:    RootConfig{Dir: root},
		Traefik: TraefikConfig{ProxyNetwork: "t2_proxy"},
		Network: NetworkConfig{SubnetBase: "10.90.0.0/24", SubnetCount: 64},
		Log:     LogConfig{Level: "error", Format: "text"},
	}
	out := &bytes.Buffer{}
	return &App{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		prompt: prompt.New(strings.NewReader(input), out),
		out:    out,
	}, out
}

func seedFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// =============================================================================
// New Flow Tests
// =============================================================================

func TestRunNew_ExposedService(t *testing.T) {
	root := t.TempDir()

	// folder, name (default), image, volume path, expose, internal port,
	// profiles, restart (default), middleware (free-form, blank), confirm.
	input := strings.Join([]string{
		"jellyfin",
		"",
		"lscr.io/linuxserver/jellyfin:latest",
		"/config",
		"y",
		"8096",
		"media",
		"",
		"",
		"",
	}, "\n") + "\n"

	app, _ := newTestApp(t, root, input)
	require.NoError(t, app.runNew())

	stackPath := filepath.Join(root, "stacks", "jellyfin", "docker-compose.yml")
	content := readFile(t, stackPath)
	assert.Contains(t, content, "jellyfin:")
	assert.Contains(t, content, "image: lscr.io/linuxserver/jellyfin:latest")
	assert.Contains(t, content, "restart: unless-stopped")
	assert.Contains(t, content, "- t2_proxy")
	assert.Contains(t, content, `traefik.enable: "true"`)
	assert.Contains(t, content, "Host(`jellyfin.${DOMAINNAME}`)")
	assert.Contains(t, content, `traefik.http.services.jellyfin-svc.loadbalancer.server.port: "8096"`)
	assert.NotContains(t, content, "ports:")

	mainContent := readFile(t, filepath.Join(root, "docker-compose.yml"))
	assert.Contains(t, mainContent, "include:")
	assert.Contains(t, mainContent, "# Media")
	assert.Contains(t, mainContent, "- stacks/jellyfin/docker-compose.yml")
}

func TestRunNew_InternalService_GetsPorts(t *testing.T) {
	root := t.TempDir()

	input := strings.Join([]string{
		"prowlarr",
		"",
		"lscr.io/linuxserver/prowlarr:latest",
		"/config",
		"n",
		"9696",
		"", // LAN port: keep internal
		"media",
		"",
		"",
	}, "\n") + "\n"

	app, _ := newTestApp(t, root, input)
	require.NoError(t, app.runNew())

	content := readFile(t, filepath.Join(root, "stacks", "prowlarr", "docker-compose.yml"))
	assert.Contains(t, content, "- 9696:9696")
	assert.NotContains(t, content, "labels:")
	assert.NotContains(t, content, "t2_proxy")
}

func TestRunNew_Declined_WritesNothing(t *testing.T) {
	root := t.TempDir()

	input := strings.Join([]string{
		"sonarr",
		"",
		"lscr.io/linuxserver/sonarr:latest",
		"/config",
		"n",
		"8989",
		"",
		"media",
		"",
		"n", // decline
	}, "\n") + "\n"

	app, out := newTestApp(t, root, input)
	require.NoError(t, app.runNew())

	_, err := os.Stat(filepath.Join(root, "stacks", "sonarr"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "docker-compose.yml"))
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, out.String(), "No changes made.")
}

// =============================================================================
// Append Flow Tests
// =============================================================================

const mediaStack = `services:
  # Media server
  jellyfin:
    image: lscr.io/linuxserver/jellyfin:latest
    restart: unless-stopped
`

func TestRunAppend_AddsService_PreservesComments(t *testing.T) {
	root := t.TempDir()
	stackPath := filepath.Join(root, "stacks", "media", "docker-compose.yml")
	seedFile(t, stackPath, mediaStack)

	input := strings.Join([]string{
		"1", // the only stack file
		"radarr",
		"lscr.io/linuxserver/radarr:latest",
		"/config",
		"n",
		"7878",
		"", // LAN port: keep internal
		"media",
		"",
		"",
	}, "\n") + "\n"

	app, _ := newTestApp(t, root, input)
	require.NoError(t, app.runAppend())

	content := readFile(t, stackPath)
	assert.Contains(t, content, "# Media server")
	assert.Contains(t, content, "jellyfin:")
	assert.Contains(t, content, "radarr:")
	assert.Contains(t, content, "- 7878:7878")
}

func TestRunAppend_RejectsDuplicateName(t *testing.T) {
	root := t.TempDir()
	stackPath := filepath.Join(root, "stacks", "media", "docker-compose.yml")
	seedFile(t, stackPath, mediaStack)

	// First name collides, second is accepted.
	input := strings.Join([]string{
		"1",
		"jellyfin",
		"radarr",
		"lscr.io/linuxserver/radarr:latest",
		"/config",
		"n",
		"7878",
		"",
		"media",
		"",
		"",
	}, "\n") + "\n"

	app, out := newTestApp(t, root, input)
	require.NoError(t, app.runAppend())

	assert.Contains(t, out.String(), "already exists")
	assert.Contains(t, readFile(t, stackPath), "radarr:")
}

func TestRunAppend_CancelledSelection(t *testing.T) {
	root := t.TempDir()
	seedFile(t, filepath.Join(root, "stacks", "media", "docker-compose.yml"), mediaStack)

	app, out := newTestApp(t, root, "0\n")
	require.NoError(t, app.runAppend())
	assert.Contains(t, out.String(), "No changes made.")
}

// =============================================================================
// Database Flow Tests
// =============================================================================

func TestRunDatabase_ScaffoldsEverything(t *testing.T) {
	root := t.TempDir()
	stackPath := filepath.Join(root, "stacks", "jellyfin", "docker-compose.yml")
	seedFile(t, stackPath, mediaStack)

	// stack file, engine (default postgres), service name (default),
	// secret value, same-stack attachments, confirm.
	input := strings.Join([]string{
		"1",
		"",
		"",
		"s3cret",
		"jellyfin",
		"",
	}, "\n") + "\n"

	app, _ := newTestApp(t, root, input)
	require.NoError(t, app.runDatabase())

	secretPath := filepath.Join(root, "secrets", "jellyfin_db_password")
	info, err := os.Stat(secretPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.Contains(t, readFile(t, secretPath), "s3cret")

	content := readFile(t, stackPath)
	assert.Contains(t, content, "jellyfin-db:")
	assert.Contains(t, content, "image: postgres:16")
	assert.Contains(t, content, "POSTGRES_PASSWORD_FILE: /run/secrets/jellyfin_db_password")
	assert.Contains(t, content, "- jellyfin-db")

	mainContent := readFile(t, filepath.Join(root, "docker-compose.yml"))
	assert.Contains(t, mainContent, "jellyfin-db:")
	assert.Contains(t, mainContent, "internal: true")
	assert.Contains(t, mainContent, "subnet: 10.90.0.0/24")
	assert.Contains(t, mainContent, "jellyfin_db_password:")
	assert.Contains(t, mainContent, "file: ./secrets/jellyfin_db_password")
}

func TestRunDatabase_SkipsUsedSubnet(t *testing.T) {
	root := t.TempDir()
	seedFile(t, filepath.Join(root, "stacks", "jellyfin", "docker-compose.yml"), mediaStack)
	seedFile(t, filepath.Join(root, "docker-compose.yml"), `networks:
  other-db:
    internal: true
    ipam:
      config:
        - subnet: 10.90.0.0/24
`)

	input := strings.Join([]string{
		"1",
		"",
		"",
		"s3cret",
		"", // no attachments
		"",
	}, "\n") + "\n"

	app, _ := newTestApp(t, root, input)
	require.NoError(t, app.runDatabase())

	mainContent := readFile(t, filepath.Join(root, "docker-compose.yml"))
	assert.Contains(t, mainContent, "subnet: 10.90.1.0/24")
}

// =============================================================================
// Secret Flow Tests
// =============================================================================

func TestRunSecret_CreatesAndRegisters(t *testing.T) {
	root := t.TempDir()

	app, _ := newTestApp(t, root, "api_key\nhunter2\n\n")
	require.NoError(t, app.runSecret())

	assert.Contains(t, readFile(t, filepath.Join(root, "secrets", "api_key")), "hunter2")

	mainContent := readFile(t, filepath.Join(root, "docker-compose.yml"))
	assert.Contains(t, mainContent, "api_key:")
	assert.Contains(t, mainContent, "file: ./secrets/api_key")
}

func TestRunSecret_Declined(t *testing.T) {
	root := t.TempDir()

	app, out := newTestApp(t, root, "api_key\nhunter2\nn\n")
	require.NoError(t, app.runSecret())

	_, err := os.Stat(filepath.Join(root, "secrets", "api_key"))
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, out.String(), "No changes made.")
}
