// Package session es el dueño exclusivo de la identidad actual del cliente
// (usuario + token): la hidrata una vez desde el almacenamiento persistente,
// la reemplaza completa en cada SetSession y notifica a los observadores
// (el autorizador de peticiones y los gates).
package session

import (
	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront/internal/application/state"
	"github.com/jhoicas/storefront/internal/domain/entity"
	"github.com/jhoicas/storefront/internal/infrastructure/storage"
)

// DefaultKey clave del registro de sesión en el almacenamiento persistente.
const DefaultKey = "auth"

// Observer recibe cada sesión nueva después de aplicarse.
type Observer interface {
	OnSession(s entity.Session)
}

// ObserverFunc adapta una función a Observer.
type ObserverFunc func(entity.Session)

// OnSession implementa Observer.
func (f ObserverFunc) OnSession(s entity.Session) { f(s) }

// Option configura el Manager.
type Option func(*options)

type options struct {
	key       string
	log       zerolog.Logger
	observers []Observer
}

// WithKey cambia la clave de almacenamiento (por defecto "auth").
func WithKey(key string) Option {
	return func(o *options) { o.key = key }
}

// WithLogger inyecta el logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithObserver registra un observador antes de cualquier otro y le entrega la
// sesión hidratada. Así el autorizador tiene el header listo antes del primer gate.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// Manager administra la sesión. Seguro para uso concurrente.
type Manager struct {
	c   *state.Container[entity.Session]
	log zerolog.Logger
}

// NewManager construye el manager e hidrata la sesión una sola vez.
// Un registro ausente o malformado deja la sesión vacía sin error y sin escribir nada.
func NewManager(store storage.Store, opts ...Option) *Manager {
	o := options{key: DefaultKey, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	persist := state.WriteThrough[entity.Session](store, o.key,
		state.WithValidator(validRecord),
		state.WithLogger[entity.Session](o.log),
	)
	m := &Manager{
		c:   state.New(entity.Session{}, persist),
		log: o.log,
	}
	hydrated := m.Session()
	for _, obs := range o.observers {
		obs.OnSession(hydrated)
		m.c.Subscribe(obs.OnSession)
	}
	if hydrated.Authenticated() {
		m.log.Debug().Str("user", hydrated.User.Email).Msg("sesión restaurada")
	}
	return m
}

// Session devuelve una copia de la sesión actual.
func (m *Manager) Session() entity.Session {
	return m.c.Get().Clone()
}

// SetSession reemplaza la sesión completa, la persiste y notifica a los observadores.
// Los observadores no deben llamar a SetSession desde su callback.
func (m *Manager) SetSession(next entity.Session) {
	next = next.Clone()
	m.c.Set(next)
	if next.Authenticated() {
		m.log.Debug().Str("user", next.User.Email).Msg("sesión actualizada")
	} else {
		m.log.Debug().Msg("sesión cerrada")
	}
}

// Subscribe registra un observador para los cambios posteriores.
func (m *Manager) Subscribe(obs Observer) (unsubscribe func()) {
	return m.c.Subscribe(func(s entity.Session) { obs.OnSession(s.Clone()) })
}

// validRecord acepta solo registros coherentes: usuario y token van juntos.
func validRecord(s entity.Session) bool {
	return (s.User == nil) == (s.Token == "")
}
