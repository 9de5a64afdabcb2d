package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authkeep/authkeep/internal/client/api"
)

func stubServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message": "user created"}`))
	})
	mux.HandleFunc("POST /api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "token-abc"}`))
	})
	mux.HandleFunc("GET /api/v1/profile", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		w.Write([]byte(`{"username": "alice"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()

	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) {
		return []byte("s3cret"), nil
	}

	srv := stubServer(t)
	var out bytes.Buffer
	return NewApp(api.New(srv.URL), strings.NewReader(input), &out), &out
}

func TestApp_RegisterLoginWhoami(t *testing.T) {
	app, out := newTestApp(t, "register\nalice\nlogin\nalice\nwhoami\nquit\n")

	require.NoError(t, app.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Registered.")
	assert.Contains(t, output, "Logged in.")
	assert.Contains(t, output, "You are alice")
}

func TestApp_WhoamiWithoutLogin(t *testing.T) {
	app, out := newTestApp(t, "whoami\nquit\n")

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Not logged in.")
}

func TestApp_UnknownCommand(t *testing.T) {
	app, out := newTestApp(t, "frobnicate\nquit\n")

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), `unknown command "frobnicate"`)
}

func TestApp_EOFEndsLoop(t *testing.T) {
	app, _ := newTestApp(t, "")
	require.NoError(t, app.Run(context.Background()))
}
