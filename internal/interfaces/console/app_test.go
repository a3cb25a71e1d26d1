package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront/internal/application/cart"
	"github.com/jhoicas/storefront/internal/application/dto"
	"github.com/jhoicas/storefront/internal/application/search"
	"github.com/jhoicas/storefront/internal/application/seed"
	"github.com/jhoicas/storefront/internal/application/session"
	"github.com/jhoicas/storefront/internal/backend"
	"github.com/jhoicas/storefront/internal/domain/entity"
	"github.com/jhoicas/storefront/internal/infrastructure/pdf"
	"github.com/jhoicas/storefront/internal/infrastructure/storage"
	"github.com/jhoicas/storefront/internal/interfaces/console"
	apphttp "github.com/jhoicas/storefront/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const waitFor = 3 * time.Second

func newTestApp(t *testing.T, store storage.Store) *console.App {
	t.Helper()
	srv, err := backend.Embedded(context.Background(), "test-secret", zerolog.Nop())
	require.NoError(t, err)
	if store == nil {
		store = storage.NewMemoryStore()
	}
	app := console.NewApp(console.Options{
		Store:     store,
		BaseURL:   "http://storefront.test/api/v1",
		Transport: &apphttp.InProcessTransport{App: srv},
		Timeout:   5 * time.Second,
		Redirect:  console.CountdownConfig{Interval: 150 * time.Millisecond},
		Reports:   pdf.NewMarotoReportGenerator(),
		Log:       zerolog.Nop(),
	})
	t.Cleanup(app.Close)
	return app
}

func eventuallyRenders(t *testing.T, app *console.App, text string) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return strings.Contains(app.Router.Render(), text)
	}, waitFor, 5*time.Millisecond, "se esperaba %q en:\n%s", text, app.Router.Render())
}

func eventuallyAt(t *testing.T, app *console.App, path string) console.NavState {
	t.Helper()
	require.Eventually(t, func() bool {
		loc, _ := app.Router.Location()
		return loc == path
	}, waitFor, 5*time.Millisecond)
	_, st := app.Router.Location()
	return st
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario principal: login, dashboard y logout
// ──────────────────────────────────────────────────────────────────────────────

func TestApp_LoginMuestraDashboardYLogoutDesautoriza(t *testing.T) {
	app := newTestApp(t, nil)
	ctx := context.Background()

	require.NoError(t, app.Login(ctx, seed.UserEmail, seed.UserPassword))
	assert.Equal(t, "/dashboard/user", app.DashboardPath())

	app.Router.Navigate("/dashboard/user", console.NavState{})
	eventuallyRenders(t, app, "John Doe")

	// Logout por la sesión: el ancestro protegido pasa a Unauthorized.
	app.Session.SetSession(entity.Session{})
	eventuallyRenders(t, app, "redirecting to you in")

	st := eventuallyAt(t, app, "/login")
	assert.Equal(t, "/dashboard/user", st.From)
	assert.Contains(t, app.Router.Render(), "Please login to access /dashboard/user")
}

func TestApp_SinSesionRedirigeYLoginVuelveAlOrigen(t *testing.T) {
	app := newTestApp(t, nil)

	app.Router.Navigate("/dashboard/user/profile", console.NavState{})
	eventuallyRenders(t, app, "redirecting to you in")
	st := eventuallyAt(t, app, "/login")
	assert.Equal(t, "/dashboard/user/profile", st.From)

	require.NoError(t, app.Login(context.Background(), seed.UserEmail, seed.UserPassword))
	loc, _ := app.Router.Location()
	assert.Equal(t, "/dashboard/user/profile", loc)
	eventuallyRenders(t, app, "User Profile")
	eventuallyRenders(t, app, "Name: John Doe")
}

func TestApp_LogoutNavegaAlLoginYPersisteSesionVacia(t *testing.T) {
	store := storage.NewMemoryStore()
	app := newTestApp(t, store)
	require.NoError(t, app.Login(context.Background(), seed.UserEmail, seed.UserPassword))

	app.Logout()
	loc, _ := app.Router.Location()
	assert.Equal(t, "/login", loc)
	assert.False(t, app.Session.Session().Authenticated())
	assert.Empty(t, app.Auth.Header().Get("Authorization"))

	raw, ok, err := store.Get(session.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"user":null,"token":""}`, raw)
}

func TestApp_SesionPersistidaSobreviveReinicio(t *testing.T) {
	store := storage.NewMemoryStore()
	first := newTestApp(t, store)
	require.NoError(t, first.Login(context.Background(), seed.UserEmail, seed.UserPassword))
	first.Close()

	second := newTestApp(t, store)
	assert.Equal(t, seed.UserName, second.Session.Session().User.Name)
	assert.True(t, strings.HasPrefix(second.Auth.Header().Get("Authorization"), "Bearer "),
		"el header queda listo con la sesión hidratada")

	second.Router.Navigate("/dashboard/user", console.NavState{})
	eventuallyRenders(t, second, "John Doe")
}

// ──────────────────────────────────────────────────────────────────────────────
// Panel de administración
// ──────────────────────────────────────────────────────────────────────────────

func TestApp_ClienteNoEntraAlPanelAdmin(t *testing.T) {
	app := newTestApp(t, nil)
	require.NoError(t, app.Login(context.Background(), seed.UserEmail, seed.UserPassword))

	app.Router.Navigate("/dashboard/admin", console.NavState{})
	eventuallyRenders(t, app, "redirecting to you in")
	assert.NotContains(t, app.Router.Render(), "Admin Panel")
	eventuallyAt(t, app, "/login")
}

func TestApp_AdminCambiaEstadoDePedido(t *testing.T) {
	app := newTestApp(t, nil)
	ctx := context.Background()
	require.NoError(t, app.Login(ctx, seed.AdminEmail, seed.AdminPassword))
	assert.Equal(t, "/dashboard/admin", app.DashboardPath())

	app.Router.Navigate("/dashboard/admin", console.NavState{})
	eventuallyRenders(t, app, "Admin Panel")

	app.Router.Navigate("/dashboard/admin/orders", console.NavState{})
	eventuallyRenders(t, app, "All Orders")
	eventuallyRenders(t, app, "statuses: Not Processed, Processing, Shipped")

	view, ok := app.OrdersView()
	require.True(t, ok)
	list := view.Controller().Orders()
	require.NotEmpty(t, list)

	require.NoError(t, view.UpdateStatus(ctx, list[0].ID, "Shipped"))
	assert.Equal(t, "Shipped", view.Controller().Orders()[0].Status)
	assert.Contains(t, app.Router.Render(), "#1 Shipped")

	err := view.UpdateStatus(ctx, list[0].ID, "Extraviado")
	assert.Error(t, err)
	assert.Equal(t, "Shipped", view.Controller().Orders()[0].Status)

	var buf bytes.Buffer
	require.NoError(t, view.ExportPDF(ctx, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestApp_PedidosDelCliente(t *testing.T) {
	app := newTestApp(t, nil)
	require.NoError(t, app.Login(context.Background(), seed.UserEmail, seed.UserPassword))

	app.Router.Navigate("/dashboard/user/orders", console.NavState{})
	eventuallyRenders(t, app, "#2 Not Processed | John Doe")

	view, ok := app.OrdersView()
	require.True(t, ok)
	_, err := view.Controller().UpdateStatus(context.Background(), view.Controller().Orders()[0].ID, "Shipped")
	assert.Error(t, err, "el cliente no cambia estados")
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo, carrito, perfil y proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestApp_BusquedaYCategoria(t *testing.T) {
	app := newTestApp(t, nil)

	require.NoError(t, app.SearchProducts(context.Background(), "smartphone"))
	assert.Contains(t, app.Router.Render(), "Smartphone X")

	app.Router.Navigate("/category/books", console.NavState{})
	eventuallyRenders(t, app, "Books: 2 result found")

	app.Router.Navigate("/category/no-existe", console.NavState{})
	eventuallyRenders(t, app, "Error:")
}

func TestApp_CarritoPersisteYNoDependeDeLaSesion(t *testing.T) {
	store := storage.NewMemoryStore()
	app := newTestApp(t, store)
	products, err := app.API.SearchProducts(context.Background(), "laptop")
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	app.Cart.Add(entity.CartItem{ProductID: p.ID, Name: p.Name, Slug: p.Slug, Price: p.Price})
	app.Router.Navigate("/cart", console.NavState{})
	assert.Contains(t, app.Router.Render(), "Laptop Pro 14")
	assert.Contains(t, app.Router.Render(), "Please login to checkout")

	again := newTestApp(t, store)
	assert.Len(t, again.Cart.Items(), 1)
}

func TestApp_ActualizarPerfilReemplazaSesion(t *testing.T) {
	app := newTestApp(t, nil)
	ctx := context.Background()
	require.NoError(t, app.Login(ctx, seed.UserEmail, seed.UserPassword))
	token := app.Session.Session().Token

	_, err := app.UpdateProfile(ctx, dto.UpdateProfileRequest{Address: "Nueva dirección 123"})
	require.NoError(t, err)

	s := app.Session.Session()
	assert.Equal(t, token, s.Token)
	assert.Equal(t, "Nueva dirección 123", s.User.Address)
}

func TestApp_RegistroNavegaAlLogin(t *testing.T) {
	app := newTestApp(t, nil)

	user, err := app.Register(context.Background(), dto.RegisterRequest{
		Name: "Jane Roe", Email: "jane@example.com", Password: "secreto1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", user.Name)
	loc, _ := app.Router.Location()
	assert.Equal(t, "/login", loc)
}

func TestApp_Proveedores(t *testing.T) {
	app := newTestApp(t, nil)
	ctx := app.Context()

	sm, err := session.FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, app.Session, sm)
	assert.Same(t, app.Cart, cart.MustFromContext(ctx))
	assert.Same(t, app.Search, search.MustFromContext(ctx))
}

func TestApp_RutaDesconocida(t *testing.T) {
	app := newTestApp(t, nil)

	app.Router.Navigate("/no/existe", console.NavState{})
	assert.Equal(t, "404\nOops ! Page Not Found", app.Router.Render())
	_, ok := app.OrdersView()
	assert.False(t, ok)
}

func TestApp_FollowSigueHastaElLogin(t *testing.T) {
	app := newTestApp(t, nil)
	// Vacía las notificaciones previas.
	select {
	case <-app.Router.Changes():
	default:
	}

	var seen []string
	app.Router.Navigate("/dashboard/admin", console.NavState{})
	last := app.Follow(context.Background(), time.Second, func(r string) { seen = append(seen, r) })

	assert.Equal(t, "Login\nPlease login to access /dashboard/admin", last)
	assert.Contains(t, seen, "redirecting to you in 1 second")
}

func TestApp_OrdersViewWait(t *testing.T) {
	app := newTestApp(t, nil)
	ctx := context.Background()
	require.NoError(t, app.Login(ctx, seed.AdminEmail, seed.AdminPassword))

	app.Router.Navigate("/dashboard/admin/orders", console.NavState{})
	var view *console.OrdersView
	require.Eventually(t, func() bool {
		v, ok := app.OrdersView()
		view = v
		return ok
	}, waitFor, 5*time.Millisecond)

	waitCtx, cancel := context.WithTimeout(ctx, waitFor)
	defer cancel()
	require.NoError(t, view.Wait(waitCtx))
	assert.Len(t, view.Controller().Orders(), 2)
	assert.Len(t, view.Controller().Statuses(), 5)
}
