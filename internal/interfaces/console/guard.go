package console

import (
	"context"
	"sync"

	"github.com/jhoicas/storefront/internal/application/gate"
)

const loadingText = "Loading..."

// GuardedView monta un gate como ancestro de la vista hija: muestra
// "Loading..." mientras verifica, la hija si queda autorizado y la cuenta
// regresiva hacia el login si no.
type GuardedView struct {
	gate     *gate.Gate
	newChild func() View
	rc       RouteContext
	redirect CountdownConfig

	mu          sync.Mutex
	ctx         context.Context
	child       View
	childCancel context.CancelFunc
	countdown   *Countdown

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewGuardedView construye la vista protegida.
func NewGuardedView(g *gate.Gate, newChild func() View, redirect CountdownConfig, rc RouteContext) *GuardedView {
	return &GuardedView{
		gate:     g,
		newChild: newChild,
		rc:       rc,
		redirect: redirect,
		stop:     make(chan struct{}),
	}
}

// Mount monta el gate y empieza a seguir sus cambios de estado.
func (v *GuardedView) Mount(ctx context.Context) {
	v.mu.Lock()
	v.ctx = ctx
	v.mu.Unlock()

	v.gate.Mount(ctx)
	v.wg.Add(1)
	go v.watch()
}

func (v *GuardedView) watch() {
	defer v.wg.Done()
	for {
		select {
		case <-v.stop:
			return
		case st := <-v.gate.Changes():
			v.apply(st)
		}
	}
}

func (v *GuardedView) apply(st gate.State) {
	switch st {
	case gate.Loading:
		// Un token nuevo se verifica sin contenido protegido ni redirección en curso.
		v.stopCountdown()
		v.unmountChild()
	case gate.Authorized:
		v.stopCountdown()
		v.mu.Lock()
		if v.child == nil {
			ctx, cancel := context.WithCancel(v.ctx)
			v.child, v.childCancel = v.newChild(), cancel
			v.child.Mount(ctx)
		}
		v.mu.Unlock()
	case gate.Unauthorized:
		v.unmountChild()
		v.mu.Lock()
		if v.countdown == nil {
			v.countdown = NewCountdown(v.redirect, v.rc.Path, v.redirectTo, func(int) { v.rc.Notify() })
			v.countdown.Start()
		}
		v.mu.Unlock()
	}
	v.rc.Notify()
}

// redirectTo navega solo si el gate sigue en Unauthorized.
func (v *GuardedView) redirectTo(path string, st NavState) {
	if v.gate.State() != gate.Unauthorized {
		return
	}
	v.rc.Navigate(path, st)
}

func (v *GuardedView) stopCountdown() {
	v.mu.Lock()
	c := v.countdown
	v.countdown = nil
	v.mu.Unlock()
	if c != nil {
		c.Stop()
	}
}

func (v *GuardedView) unmountChild() {
	v.mu.Lock()
	child, cancel := v.child, v.childCancel
	v.child, v.childCancel = nil, nil
	v.mu.Unlock()
	if child != nil {
		cancel()
		child.Unmount()
	}
}

// Unmount detiene el seguimiento, desmonta el gate, la cuenta y la hija.
func (v *GuardedView) Unmount() {
	v.stopOnce.Do(func() { close(v.stop) })
	v.wg.Wait()
	v.gate.Unmount()
	v.stopCountdown()
	v.unmountChild()
}

// State estado actual del gate.
func (v *GuardedView) State() gate.State {
	return v.gate.State()
}

// Child vista hija montada, o nil.
func (v *GuardedView) Child() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.child
}

// Render implementa View.
func (v *GuardedView) Render() string {
	if v.gate.State() == gate.Loading {
		return loadingText
	}
	v.mu.Lock()
	child, c := v.child, v.countdown
	v.mu.Unlock()
	switch {
	case child != nil:
		return child.Render()
	case c != nil:
		return c.Text()
	default:
		return loadingText
	}
}
