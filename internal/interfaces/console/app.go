package console

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront/internal/application/cart"
	"github.com/jhoicas/storefront/internal/application/dto"
	"github.com/jhoicas/storefront/internal/application/gate"
	"github.com/jhoicas/storefront/internal/application/orders"
	"github.com/jhoicas/storefront/internal/application/search"
	"github.com/jhoicas/storefront/internal/application/session"
	"github.com/jhoicas/storefront/internal/domain/entity"
	"github.com/jhoicas/storefront/internal/infrastructure/apiclient"
	"github.com/jhoicas/storefront/internal/infrastructure/storage"
)

// Options dependencias de la consola.
type Options struct {
	Store   storage.Store
	BaseURL string
	// Transport transport base hacia el backend (http.DefaultTransport si es nil).
	Transport  http.RoundTripper
	Timeout    time.Duration
	SessionKey string
	CartKey    string
	Redirect   CountdownConfig
	Reports    orders.ReportGenerator
	Log        zerolog.Logger
}

// App raíz de composición: sesión, autorizador, cliente API, contenedores y router.
type App struct {
	Session *session.Manager
	Auth    *apiclient.Authorizer
	API     *apiclient.Client
	Cart    *cart.Container
	Search  *search.Container
	Router  *Router

	reports  orders.ReportGenerator
	redirect CountdownConfig
	log      zerolog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewApp arma la consola. El autorizador se registra como primer observador
// de la sesión, así el header ya está listo cuando se monta el primer gate.
func NewApp(opts Options) *App {
	log := opts.Log
	auth := apiclient.NewAuthorizer(opts.Transport, log.With().Str("component", "authorizer").Logger())

	sessOpts := []session.Option{
		session.WithLogger(log.With().Str("component", "session").Logger()),
		session.WithObserver(auth),
	}
	if opts.SessionKey != "" {
		sessOpts = append(sessOpts, session.WithKey(opts.SessionKey))
	}
	cartOpts := []cart.Option{cart.WithLogger(log.With().Str("component", "cart").Logger())}
	if opts.CartKey != "" {
		cartOpts = append(cartOpts, cart.WithKey(opts.CartKey))
	}

	a := &App{
		Session:  session.NewManager(opts.Store, sessOpts...),
		Auth:     auth,
		API:      apiclient.New(opts.BaseURL, auth, opts.Timeout, log.With().Str("component", "api").Logger()),
		Cart:     cart.New(opts.Store, cartOpts...),
		Search:   search.New(),
		reports:  opts.Reports,
		redirect: opts.Redirect.withDefaults(),
		log:      log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	ctx = session.NewContext(ctx, a.Session)
	ctx = cart.NewContext(ctx, a.Cart)
	ctx = search.NewContext(ctx, a.Search)
	a.ctx, a.cancel = ctx, cancel

	a.Router = NewRouter(ctx, a.routes(), func(RouteContext) View {
		return textView("404\nOops ! Page Not Found")
	}, log.With().Str("component", "router").Logger())
	return a
}

// Context contexto con los proveedores de sesión, carrito y buscador.
func (a *App) Context() context.Context {
	return a.ctx
}

func (a *App) routes() []Route {
	gateLog := a.log.With().Str("component", "gate").Logger()
	private := func(child func(rc RouteContext) View) Factory {
		return func(rc RouteContext) View {
			sm := session.MustFromContext(a.ctx)
			g := gate.NewPrivate(sm, a.API, gate.WithLogger(gateLog))
			return NewGuardedView(g, func() View { return child(rc) }, a.redirect, rc)
		}
	}
	admin := func(child func(rc RouteContext) View) Factory {
		return func(rc RouteContext) View {
			sm := session.MustFromContext(a.ctx)
			g := gate.NewAdmin(sm, a.API, gate.WithLogger(gateLog))
			return NewGuardedView(g, func() View { return child(rc) }, a.redirect, rc)
		}
	}
	ordersLog := a.log.With().Str("component", "orders").Logger()
	newOrders := func(isAdmin bool) func(rc RouteContext) View {
		return func(rc RouteContext) View {
			opts := []orders.Option{orders.WithLogger(ordersLog)}
			if isAdmin {
				opts = append(opts, orders.WithAdmin())
			}
			if a.reports != nil {
				operator := ""
				if u := a.Session.Session().User; u != nil {
					operator = u.Name
				}
				opts = append(opts, orders.WithReportGenerator(a.reports, operator))
			}
			return newOrdersView(orders.NewController(a.API, opts...), isAdmin, rc)
		}
	}

	return []Route{
		{Pattern: "/", Factory: func(RouteContext) View { return homeView(a.Session, a.Cart) }},
		{Pattern: "/login", Factory: loginView},
		{Pattern: "/register", Factory: func(RouteContext) View { return textView("Register") }},
		{Pattern: "/cart", Factory: func(RouteContext) View {
			return cartView(a.Session, cart.MustFromContext(a.ctx))
		}},
		{Pattern: "/search", Factory: func(RouteContext) View {
			return searchView(search.MustFromContext(a.ctx))
		}},
		{Pattern: "/category/:slug", Factory: func(rc RouteContext) View { return categoryView(a.API, rc) }},
		{Pattern: "/dashboard/user", Factory: private(func(RouteContext) View { return userDashboardView(a.Session) })},
		{Pattern: "/dashboard/user/profile", Factory: private(func(RouteContext) View { return profileView(a.Session) })},
		{Pattern: "/dashboard/user/orders", Factory: private(newOrders(false))},
		{Pattern: "/dashboard/admin", Factory: admin(func(RouteContext) View { return adminDashboardView(a.Session) })},
		{Pattern: "/dashboard/admin/orders", Factory: admin(newOrders(true))},
	}
}

// Login POST /auth/login; guarda la sesión y vuelve a la ubicación de origen (o "/").
func (a *App) Login(ctx context.Context, email, password string) error {
	out, err := a.API.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	user := out.User
	a.Session.SetSession(entity.Session{User: &user, Token: out.Token})
	a.log.Info().Str("user", user.Email).Msg("sesión iniciada")

	target := "/"
	if loc, st := a.Router.Location(); loc == "/login" && st.From != "" {
		target = st.From
	}
	a.Router.Navigate(target, NavState{})
	return nil
}

// Register POST /auth/register y navega al login.
func (a *App) Register(ctx context.Context, in dto.RegisterRequest) (*entity.UserProfile, error) {
	user, err := a.API.Register(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	a.Router.Navigate("/login", NavState{})
	return user, nil
}

// Logout vacía la sesión (el registro persistido queda {user:null, token:""}) y navega al login.
func (a *App) Logout() {
	a.Session.SetSession(entity.Session{})
	a.log.Info().Msg("sesión cerrada")
	a.Router.Navigate("/login", NavState{})
}

// UpdateProfile PUT /auth/profile; reemplaza la sesión con el usuario devuelto y el mismo token.
func (a *App) UpdateProfile(ctx context.Context, in dto.UpdateProfileRequest) (*entity.UserProfile, error) {
	user, err := a.API.UpdateProfile(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("perfil: %w", err)
	}
	cur := a.Session.Session()
	a.Session.SetSession(entity.Session{User: user, Token: cur.Token})
	return user, nil
}

// SearchProducts ejecuta la búsqueda y navega a /search.
func (a *App) SearchProducts(ctx context.Context, keyword string) error {
	if _, err := a.Search.Run(ctx, a.API, keyword); err != nil {
		return err
	}
	a.Router.Navigate("/search", NavState{})
	return nil
}

// DashboardPath ruta del panel según el rol de la sesión.
func (a *App) DashboardPath() string {
	return dashboardPath(a.Session.Session())
}

// OrdersView vista de pedidos montada actualmente, si la hay.
func (a *App) OrdersView() (*OrdersView, bool) {
	a.Router.mu.Lock()
	v := a.Router.current
	a.Router.mu.Unlock()
	if g, ok := v.(*GuardedView); ok {
		v = g.Child()
	}
	ov, ok := v.(*OrdersView)
	return ov, ok
}

// Follow emite cada render distinto de la vista actual hasta que pasan quiet
// sin cambios o se cancela ctx. Devuelve el último render.
func (a *App) Follow(ctx context.Context, quiet time.Duration, emit func(string)) string {
	last := a.Router.Render()
	if emit != nil {
		emit(last)
	}
	timer := time.NewTimer(quiet)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return last
		case <-timer.C:
			return last
		case <-a.Router.Changes():
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(quiet)
			if cur := a.Router.Render(); cur != last {
				last = cur
				if emit != nil {
					emit(cur)
				}
			}
		}
	}
}

// Close desmonta la vista actual y cancela todo lo pendiente.
func (a *App) Close() {
	a.Router.Close()
	a.cancel()
}
