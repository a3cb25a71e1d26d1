// Package console es el front-end de texto de la tienda: un router de rutas
// con nombre, las vistas y la raíz de composición que conecta sesión,
// autorizador, gates y controladores.
package console

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// View componente montable. Mount puede lanzar trabajo en segundo plano
// ligado a ctx; Unmount lo cancela y espera.
type View interface {
	Mount(ctx context.Context)
	Unmount()
	Render() string
}

// RouteContext datos de la navegación que recibe cada vista.
type RouteContext struct {
	Path   string
	Params map[string]string
	State  NavState
	// Navigate navega solo si la vista que lo llama sigue montada.
	Navigate func(path string, st NavState)
	// Notify avisa al router que la vista cambió.
	Notify func()
}

// Factory construye la vista de una ruta.
type Factory func(rc RouteContext) View

// Route patrón con segmentos ":param".
type Route struct {
	Pattern string
	Factory Factory
}

type compiledRoute struct {
	segments []string
	factory  Factory
}

// Router navega entre rutas con nombre montando una vista a la vez.
type Router struct {
	routes   []compiledRoute
	notFound Factory
	log      zerolog.Logger
	base     context.Context

	mu       sync.Mutex
	gen      uint64
	location string
	state    NavState
	current  View
	cancel   context.CancelFunc
	closed   bool
	changes  chan struct{}
}

// NewRouter construye el router; ctx acota todas las vistas montadas.
func NewRouter(ctx context.Context, routes []Route, notFound Factory, log zerolog.Logger) *Router {
	r := &Router{
		notFound: notFound,
		log:      log,
		base:     ctx,
		changes:  make(chan struct{}, 1),
	}
	for _, rt := range routes {
		r.routes = append(r.routes, compiledRoute{segments: split(rt.Pattern), factory: rt.Factory})
	}
	return r
}

// Navigate desmonta la vista actual (cancelando su gate, cuenta regresiva y
// controladores) y monta la de path.
func (r *Router) Navigate(path string, st NavState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigateLocked(path, st)
}

// navigateFrom navega solo si gen sigue siendo la navegación vigente.
func (r *Router) navigateFrom(gen uint64, path string, st NavState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen != gen {
		r.log.Debug().Str("path", path).Msg("navegación de una vista desmontada descartada")
		return
	}
	r.navigateLocked(path, st)
}

func (r *Router) navigateLocked(path string, st NavState) {
	if r.closed {
		return
	}
	r.unmountLocked()
	r.gen++
	gen := r.gen

	path = normalize(path)
	factory, params := r.match(path)
	rc := RouteContext{
		Path:   path,
		Params: params,
		State:  st,
		Navigate: func(p string, s NavState) {
			r.navigateFrom(gen, p, s)
		},
		Notify: r.notify,
	}
	ctx, cancel := context.WithCancel(r.base)
	r.location, r.state = path, st
	r.current, r.cancel = factory(rc), cancel
	r.log.Debug().Str("path", path).Str("from", st.From).Msg("navegación")
	r.current.Mount(ctx)
	r.notify()
}

func (r *Router) unmountLocked() {
	if r.current == nil {
		return
	}
	r.cancel()
	r.current.Unmount()
	r.current, r.cancel = nil, nil
}

// Location ruta actual y su estado de navegación.
func (r *Router) Location() (string, NavState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location, r.state
}

// Render texto de la vista actual.
func (r *Router) Render() string {
	r.mu.Lock()
	v := r.current
	r.mu.Unlock()
	if v == nil {
		return ""
	}
	return v.Render()
}

// Changes avisa (sin acumular) que la ubicación o la vista cambiaron.
func (r *Router) Changes() <-chan struct{} {
	return r.changes
}

// Close desmonta la vista actual; después Navigate no hace nada.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unmountLocked()
	r.closed = true
	r.gen++
}

func (r *Router) notify() {
	select {
	case r.changes <- struct{}{}:
	default:
	}
}

func (r *Router) match(path string) (Factory, map[string]string) {
	segs := split(path)
	for _, rt := range r.routes {
		if params, ok := matchSegments(rt.segments, segs); ok {
			return rt.factory, params
		}
	}
	return r.notFound, map[string]string{}
}

func matchSegments(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := make(map[string]string)
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return nil, false
			}
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(path, "/")
	return path
}

func split(path string) []string {
	path = strings.Trim(normalize(path), "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
