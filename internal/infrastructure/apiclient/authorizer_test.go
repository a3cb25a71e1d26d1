package apiclient_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront/internal/domain/entity"
	"github.com/jhoicas/storefront/internal/infrastructure/apiclient"
)

// headerRecorder servidor que guarda los headers de la última petición.
type headerRecorder struct {
	mu   sync.Mutex
	last http.Header
}

func (h *headerRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.last = r.Header.Clone()
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (h *headerRecorder) header() http.Header {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func send(t *testing.T, client *http.Client, url string) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestAuthorizer_TokenSeAplicaComoBearer(t *testing.T) {
	rec := &headerRecorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	auth := apiclient.NewAuthorizer(nil, zerolog.Nop())
	client := &http.Client{Transport: auth}

	auth.OnSession(entity.Session{User: &entity.UserProfile{Name: "John Doe"}, Token: "abc123"})
	send(t, client, srv.URL)

	assert.Equal(t, "Bearer abc123", rec.header().Get(apiclient.HeaderAuthorization))
	assert.NotEmpty(t, rec.header().Get(apiclient.HeaderRequestID))
	assert.Equal(t, "Bearer abc123", auth.Header().Get(apiclient.HeaderAuthorization))
}

func TestAuthorizer_TokenVacioEliminaHeader(t *testing.T) {
	rec := &headerRecorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	auth := apiclient.NewAuthorizer(nil, zerolog.Nop())
	client := &http.Client{Transport: auth}

	auth.OnSession(entity.Session{User: &entity.UserProfile{Name: "John Doe"}, Token: "abc123"})
	auth.OnSession(entity.Session{})
	send(t, client, srv.URL)

	_, present := rec.header()[apiclient.HeaderAuthorization]
	assert.False(t, present, "sin token no debe enviarse Authorization")
	assert.Empty(t, auth.Header().Get(apiclient.HeaderAuthorization))
}

func TestAuthorizer_UltimoTokenGana(t *testing.T) {
	rec := &headerRecorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	auth := apiclient.NewAuthorizer(nil, zerolog.Nop())
	client := &http.Client{Transport: auth}

	auth.OnSession(entity.Session{Token: "uno"})
	auth.OnSession(entity.Session{Token: "dos"})
	send(t, client, srv.URL)

	assert.Equal(t, "Bearer dos", rec.header().Get(apiclient.HeaderAuthorization))
}

func TestAuthorizer_NoModificaLaPeticionOriginal(t *testing.T) {
	rec := &headerRecorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	auth := apiclient.NewAuthorizer(nil, zerolog.Nop())
	auth.OnSession(entity.Session{Token: "abc123"})

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := auth.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, req.Header.Get(apiclient.HeaderAuthorization))
	assert.Equal(t, "Bearer abc123", rec.header().Get(apiclient.HeaderAuthorization))
}

func TestAuthorizer_HeaderExplicitoNoSeSobrescribe(t *testing.T) {
	rec := &headerRecorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	auth := apiclient.NewAuthorizer(nil, zerolog.Nop())
	auth.OnSession(entity.Session{Token: "abc123"})

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set(apiclient.HeaderAuthorization, "Bearer otro")
	resp, err := (&http.Client{Transport: auth}).Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer otro", rec.header().Get(apiclient.HeaderAuthorization))
}
