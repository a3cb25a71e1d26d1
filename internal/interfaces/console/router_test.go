package console

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingView registra su ciclo de vida.
type recordingView struct {
	name string
	rc   RouteContext

	mu        sync.Mutex
	mounted   bool
	unmounted bool
	ctx       context.Context
}

func (v *recordingView) Mount(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mounted, v.ctx = true, ctx
}

func (v *recordingView) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.unmounted = true
}

func (v *recordingView) Render() string { return v.name }

type viewLog struct {
	mu    sync.Mutex
	views []*recordingView
}

func (l *viewLog) factory(name string) Factory {
	return func(rc RouteContext) View {
		v := &recordingView{name: name, rc: rc}
		l.mu.Lock()
		l.views = append(l.views, v)
		l.mu.Unlock()
		return v
	}
}

func newTestRouter(l *viewLog) *Router {
	return NewRouter(context.Background(), []Route{
		{Pattern: "/", Factory: l.factory("home")},
		{Pattern: "/login", Factory: l.factory("login")},
		{Pattern: "/category/:slug", Factory: l.factory("category")},
		{Pattern: "/dashboard/user/orders", Factory: l.factory("orders")},
	}, l.factory("notfound"), zerolog.Nop())
}

func TestRouter_CoincideRutasYParametros(t *testing.T) {
	l := &viewLog{}
	r := newTestRouter(l)
	defer r.Close()

	cases := []struct {
		path, want string
	}{
		{path: "/", want: "home"},
		{path: "", want: "home"},
		{path: "/login/", want: "login"},
		{path: "/category/books?page=2", want: "category"},
		{path: "/dashboard/user/orders", want: "orders"},
		{path: "/dashboard/user/orders/extra", want: "notfound"},
		{path: "/nope", want: "notfound"},
	}
	for _, tc := range cases {
		r.Navigate(tc.path, NavState{})
		assert.Equal(t, tc.want, r.Render(), tc.path)
	}

	r.Navigate("/category/books", NavState{})
	l.mu.Lock()
	last := l.views[len(l.views)-1]
	l.mu.Unlock()
	assert.Equal(t, "books", last.rc.Params["slug"])
	loc, _ := r.Location()
	assert.Equal(t, "/category/books", loc)
}

func TestRouter_NavigateDesmontaLaVistaAnterior(t *testing.T) {
	l := &viewLog{}
	r := newTestRouter(l)

	r.Navigate("/", NavState{})
	r.Navigate("/login", NavState{From: "/dashboard/user"})

	require.Len(t, l.views, 2)
	first, second := l.views[0], l.views[1]
	assert.True(t, first.unmounted)
	assert.Error(t, first.ctx.Err(), "el contexto de la vista desmontada se cancela")
	assert.True(t, second.mounted)
	assert.False(t, second.unmounted)

	_, st := r.Location()
	assert.Equal(t, "/dashboard/user", st.From)
	assert.Equal(t, "/dashboard/user", second.rc.State.From)

	r.Close()
	assert.True(t, second.unmounted)
	r.Navigate("/", NavState{})
	assert.Len(t, l.views, 2, "después de Close no se monta nada")
}

func TestRouter_NavegacionDeVistaDesmontadaSeDescarta(t *testing.T) {
	l := &viewLog{}
	r := newTestRouter(l)
	defer r.Close()

	r.Navigate("/", NavState{})
	stale := l.views[0]
	r.Navigate("/category/books", NavState{})

	stale.rc.Navigate("/login", NavState{})
	loc, _ := r.Location()
	assert.Equal(t, "/category/books", loc)
}

func TestRouter_ChangesNotifica(t *testing.T) {
	l := &viewLog{}
	r := newTestRouter(l)
	defer r.Close()

	r.Navigate("/", NavState{})
	select {
	case <-r.Changes():
	default:
		t.Fatal("se esperaba una notificación")
	}
}
