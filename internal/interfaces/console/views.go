package console

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/storefront/internal/application/cart"
	"github.com/jhoicas/storefront/internal/application/search"
	"github.com/jhoicas/storefront/internal/application/session"
	"github.com/jhoicas/storefront/internal/domain/entity"
)

// staticView vista sin trabajo en segundo plano; se renderiza en cada llamada.
type staticView struct {
	render func() string
}

func (v staticView) Mount(context.Context) {}
func (v staticView) Unmount()              {}
func (v staticView) Render() string        { return v.render() }

func textView(s string) View {
	return staticView{render: func() string { return s }}
}

func homeView(sm *session.Manager, c *cart.Container) View {
	return staticView{render: func() string {
		s := sm.Session()
		var b strings.Builder
		b.WriteString("Storefront\n")
		if s.Authenticated() {
			fmt.Fprintf(&b, "Hello, %s\n", s.User.Name)
			b.WriteString("dashboard | logout")
		} else {
			b.WriteString("login | register")
		}
		fmt.Fprintf(&b, " | cart (%d)", c.Count())
		return b.String()
	}}
}

func loginView(rc RouteContext) View {
	return staticView{render: func() string {
		if rc.State.From != "" {
			return "Login\nPlease login to access " + rc.State.From
		}
		return "Login"
	}}
}

func dashboardPath(s entity.Session) string {
	if s.User != nil && s.User.IsAdmin() {
		return "/dashboard/admin"
	}
	return "/dashboard/user"
}

func userDashboardView(sm *session.Manager) View {
	return staticView{render: func() string {
		u := sm.Session().User
		if u == nil {
			return "Dashboard"
		}
		return fmt.Sprintf("Dashboard\n%s\n%s\n%s\nprofile | orders", u.Name, u.Email, u.Address)
	}}
}

func profileView(sm *session.Manager) View {
	return staticView{render: func() string {
		u := sm.Session().User
		if u == nil {
			return "User Profile"
		}
		return fmt.Sprintf("User Profile\nName: %s\nEmail: %s\nPhone: %s\nAddress: %s", u.Name, u.Email, u.Phone, u.Address)
	}}
}

func adminDashboardView(sm *session.Manager) View {
	return staticView{render: func() string {
		u := sm.Session().User
		if u == nil {
			return "Admin Panel"
		}
		return fmt.Sprintf("Admin Panel\nAdmin Name: %s\nAdmin Email: %s\nAdmin Contact: %s\norders", u.Name, u.Email, u.Phone)
	}}
}

func cartView(sm *session.Manager, c *cart.Container) View {
	return staticView{render: func() string {
		var b strings.Builder
		s := sm.Session()
		if s.Authenticated() {
			fmt.Fprintf(&b, "Hello %s\n", s.User.Name)
		} else {
			b.WriteString("Hello Guest\n")
		}
		items := c.Items()
		if len(items) == 0 {
			b.WriteString("Your Cart Is Empty")
			return b.String()
		}
		fmt.Fprintf(&b, "You Have %d items in your cart\n", c.Count())
		for _, it := range items {
			q := it.Quantity
			if q <= 0 {
				q = 1
			}
			fmt.Fprintf(&b, "- %s x%d  $%s\n", it.Name, q, it.Price.StringFixed(2))
		}
		fmt.Fprintf(&b, "Total: $%s", c.Total().StringFixed(2))
		if !s.Authenticated() {
			b.WriteString("\nPlease login to checkout")
		}
		return b.String()
	}}
}

func searchView(s *search.Container) View {
	return staticView{render: func() string {
		st := s.Get()
		var b strings.Builder
		b.WriteString("Search Results\n")
		if len(st.Results) == 0 {
			b.WriteString("No Products Found")
			return b.String()
		}
		fmt.Fprintf(&b, "Found %d for %q\n", len(st.Results), st.Keyword)
		writeProducts(&b, st.Results)
		return strings.TrimRight(b.String(), "\n")
	}}
}

func writeProducts(b *strings.Builder, list []entity.Product) {
	for _, p := range list {
		fmt.Fprintf(b, "- %s  $%s  /product/%s\n", p.Name, p.Price.StringFixed(2), p.Slug)
	}
}

// loaderView carga datos en segundo plano al montarse. El ctx de Mount lo
// cancela el dueño antes de Unmount.
type loaderView struct {
	rc    RouteContext
	title string
	fetch func(ctx context.Context) error
	body  func() string

	mu     sync.Mutex
	loaded bool
	err    error
	wg     sync.WaitGroup

	readyOnce sync.Once
	ready     chan struct{}
}

func (v *loaderView) readyChan() chan struct{} {
	v.readyOnce.Do(func() { v.ready = make(chan struct{}) })
	return v.ready
}

// Wait bloquea hasta que termina la primera carga y devuelve su error.
func (v *loaderView) Wait(ctx context.Context) error {
	select {
	case <-v.readyChan():
		v.mu.Lock()
		defer v.mu.Unlock()
		return v.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *loaderView) Mount(ctx context.Context) {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		err := v.fetch(ctx)
		if ctx.Err() != nil {
			return
		}
		v.mu.Lock()
		v.loaded, v.err = true, err
		v.mu.Unlock()
		close(v.readyChan())
		v.rc.Notify()
	}()
}

func (v *loaderView) Unmount() {
	v.wg.Wait()
}

func (v *loaderView) Render() string {
	v.mu.Lock()
	loaded, err := v.loaded, v.err
	v.mu.Unlock()
	switch {
	case !loaded:
		return v.title + "\nloading..."
	case err != nil:
		return v.title + "\nError: " + err.Error()
	default:
		return v.title + "\n" + v.body()
	}
}

// CategoryAPI endpoint de productos por categoría.
type CategoryAPI interface {
	CategoryProducts(ctx context.Context, slug string) (entity.Category, []entity.Product, error)
}

func categoryView(api CategoryAPI, rc RouteContext) View {
	var (
		mu   sync.Mutex
		cat  entity.Category
		list []entity.Product
	)
	v := &loaderView{rc: rc, title: "Category - " + rc.Params["slug"]}
	v.fetch = func(ctx context.Context) error {
		c, l, err := api.CategoryProducts(ctx, rc.Params["slug"])
		if err != nil {
			return err
		}
		mu.Lock()
		cat, list = c, l
		mu.Unlock()
		return nil
	}
	v.body = func() string {
		mu.Lock()
		defer mu.Unlock()
		var b strings.Builder
		fmt.Fprintf(&b, "%s: %d result found\n", cat.Name, len(list))
		writeProducts(&b, list)
		return strings.TrimRight(b.String(), "\n")
	}
	return v
}
