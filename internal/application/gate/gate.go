// Package gate implementa los guardias de las rutas protegidas: combinan la
// sesión local con una verificación en el backend para decidir si se muestra
// el contenido, un indicador de carga o la redirección al login.
package gate

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront/internal/application/session"
	"github.com/jhoicas/storefront/internal/domain/entity"
)

// State estado de render del gate.
type State int

const (
	Loading State = iota
	Authorized
	Unauthorized
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// SessionSource vista de solo lectura de la sesión (session.Manager la implementa).
type SessionSource interface {
	Session() entity.Session
	Subscribe(obs session.Observer) (unsubscribe func())
}

// AuthAPI endpoints de verificación del backend. El token viaja en el header
// por defecto, nunca como parámetro.
type AuthAPI interface {
	UserAuth(ctx context.Context) (bool, error)
	AdminAuth(ctx context.Context) (bool, error)
}

type verifyFunc func(ctx context.Context) (bool, error)

// Option configura un Gate.
type Option func(*Gate)

// WithLogger inyecta el logger.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Gate) { g.log = log }
}

// Gate máquina de estados Loading / Authorized / Unauthorized.
// Nunca modifica la sesión.
type Gate struct {
	name   string
	src    SessionSource
	verify verifyFunc
	admit  func(entity.Session) bool
	log    zerolog.Logger

	mu       sync.Mutex
	state    State
	mounted  bool
	seq      uint64
	token    string
	admitted bool
	cancel   context.CancelFunc
	stop     context.CancelFunc
	base     context.Context
	unsub    func()
	updated  chan struct{}
	changes  chan State
	wg       sync.WaitGroup
}

// NewPrivate gate de usuario autenticado: verifica contra GET /auth/user-auth.
func NewPrivate(src SessionSource, api AuthAPI, opts ...Option) *Gate {
	return newGate("private", src, api.UserAuth, func(entity.Session) bool { return true }, opts)
}

// NewAdmin gate de administrador: exige user.role == 1 antes de verificar y
// verifica contra GET /auth/admin-auth. Una sesión sin rol admin nunca queda Authorized.
func NewAdmin(src SessionSource, api AuthAPI, opts ...Option) *Gate {
	return newGate("admin", src, api.AdminAuth, func(s entity.Session) bool {
		return s.User != nil && s.User.IsAdmin()
	}, opts)
}

func newGate(name string, src SessionSource, verify verifyFunc, admit func(entity.Session) bool, opts []Option) *Gate {
	g := &Gate{
		name:    name,
		src:     src,
		verify:  verify,
		admit:   admit,
		log:     zerolog.Nop(),
		state:   Loading,
		updated: make(chan struct{}),
		changes: make(chan State, 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With().Str("gate", name).Logger()
	return g
}

// Mount se suscribe a la sesión y evalúa. Reevalúa cada vez que cambia el token.
// ctx acota todas las verificaciones del montaje.
func (g *Gate) Mount(ctx context.Context) {
	g.mu.Lock()
	if g.mounted {
		g.mu.Unlock()
		return
	}
	g.mounted = true
	g.base, g.stop = context.WithCancel(ctx)
	g.token = ""
	g.admitted = false
	g.mu.Unlock()

	unsub := g.src.Subscribe(session.ObserverFunc(g.onSession))
	g.mu.Lock()
	g.unsub = unsub
	g.mu.Unlock()

	g.evaluate(g.src.Session(), true)
}

// Unmount se desuscribe, cancela la verificación en curso y espera a las
// goroutines. Los resultados tardíos se descartan.
func (g *Gate) Unmount() {
	g.mu.Lock()
	if !g.mounted {
		g.mu.Unlock()
		return
	}
	g.mounted = false
	g.seq++
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.stop()
	unsub := g.unsub
	g.unsub = nil
	g.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	g.wg.Wait()
}

// State devuelve el estado actual.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Changes notifica cambios de estado. Es un canal de capacidad 1 que conserva
// solo el último valor: un lector lento ve el estado más reciente.
func (g *Gate) Changes() <-chan State {
	return g.changes
}

// Wait bloquea hasta que el estado deja de ser Loading o ctx termina.
func (g *Gate) Wait(ctx context.Context) (State, error) {
	for {
		g.mu.Lock()
		st, ch := g.state, g.updated
		settled := g.mounted && st != Loading
		g.mu.Unlock()
		if settled {
			return st, nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

func (g *Gate) onSession(s entity.Session) {
	g.evaluate(s, false)
}

// evaluate arranca una evaluación etiquetada con (seq, token). force la
// ejecuta aunque el token no haya cambiado (montaje).
func (g *Gate) evaluate(s entity.Session, force bool) {
	admitted := s.HasToken() && g.admit(s)

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.mounted {
		return
	}
	if !force && s.Token == g.token && admitted == g.admitted {
		return
	}
	g.seq++
	seq, token := g.seq, s.Token
	g.token, g.admitted = token, admitted
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}

	if !admitted {
		if s.HasToken() {
			g.log.Debug().Msg("rol insuficiente, sin verificación remota")
		}
		g.setLocked(Unauthorized)
		return
	}

	ctx, cancel := context.WithCancel(g.base)
	g.cancel = cancel
	g.setLocked(Loading)
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer cancel()
		ok, err := g.verify(ctx)

		g.mu.Lock()
		defer g.mu.Unlock()
		if !g.mounted || seq != g.seq || token != g.token {
			g.log.Debug().Uint64("seq", seq).Msg("verificación obsoleta descartada")
			return
		}
		g.cancel = nil
		switch {
		case err != nil:
			g.log.Debug().Err(err).Msg("verificación fallida")
			g.setLocked(Unauthorized)
		case !ok:
			g.setLocked(Unauthorized)
		default:
			g.setLocked(Authorized)
		}
	}()
}

// setLocked requiere g.mu. Despierta a Wait siempre; Changes solo si el estado cambió.
func (g *Gate) setLocked(st State) {
	changed := g.state != st
	g.state = st
	close(g.updated)
	g.updated = make(chan struct{})
	if !changed {
		return
	}
	select {
	case <-g.changes:
	default:
	}
	select {
	case g.changes <- st:
	default:
	}
}
