package apiclient

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront/internal/domain/entity"
)

// HeaderAuthorization header por defecto que mantiene el Authorizer.
const HeaderAuthorization = "Authorization"

// HeaderRequestID correlación de logs entre consola y backend.
const HeaderRequestID = "X-Request-ID"

// Authorizer es el único componente que modifica los headers por defecto de
// las peticiones salientes. Observa la sesión: cada cambio de token actualiza
// (o elimina) el header Authorization que se aplica a todas las peticiones.
type Authorizer struct {
	base http.RoundTripper
	log  zerolog.Logger

	mu       sync.RWMutex
	defaults http.Header
}

// NewAuthorizer envuelve base (http.DefaultTransport si es nil).
func NewAuthorizer(base http.RoundTripper, log zerolog.Logger) *Authorizer {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Authorizer{base: base, log: log, defaults: make(http.Header)}
}

// OnSession implementa session.Observer.
func (a *Authorizer) OnSession(s entity.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !s.HasToken() {
		a.defaults.Del(HeaderAuthorization)
		a.log.Debug().Msg("header Authorization eliminado")
		return
	}
	a.defaults.Set(HeaderAuthorization, "Bearer "+s.Token)
	a.log.Debug().Msg("header Authorization actualizado")
}

// Header devuelve una copia de los headers por defecto vigentes.
func (a *Authorizer) Header() http.Header {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.defaults.Clone()
}

// RoundTrip aplica los headers por defecto sobre una copia de la petición.
func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	a.mu.RLock()
	for k, vv := range a.defaults {
		if out.Header.Get(k) == "" {
			out.Header[k] = append([]string(nil), vv...)
		}
	}
	a.mu.RUnlock()
	if out.Header.Get(HeaderRequestID) == "" {
		out.Header.Set(HeaderRequestID, uuid.NewString())
	}
	return a.base.RoundTrip(out)
}
