package console

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// navRecorder registra las navegaciones de la cuenta regresiva.
type navRecorder struct {
	mu    sync.Mutex
	paths []string
	state []NavState
	done  chan struct{}
}

func newNavRecorder() *navRecorder {
	return &navRecorder{done: make(chan struct{}, 1)}
}

func (n *navRecorder) navigate(path string, st NavState) {
	n.mu.Lock()
	n.paths = append(n.paths, path)
	n.state = append(n.state, st)
	n.mu.Unlock()
	n.done <- struct{}{}
}

func (n *navRecorder) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.paths)
}

func TestCountdown_DecrementaYNavegaAlLogin(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	nav := newNavRecorder()
	var (
		mu    sync.Mutex
		ticks []int
	)
	c := NewCountdown(CountdownConfig{Interval: 10 * time.Millisecond}, "/dashboard/user", nav.navigate, func(n int) {
		mu.Lock()
		ticks = append(ticks, n)
		mu.Unlock()
	})
	assert.Equal(t, 3, c.Remaining(), "la cuenta arranca en 3")
	assert.Equal(t, "redirecting to you in 3 second", c.Text())

	c.Start()
	select {
	case <-nav.done:
	case <-time.After(2 * time.Second):
		t.Fatal("la cuenta debía navegar")
	}
	c.Stop()

	mu.Lock()
	assert.Equal(t, []int{2, 1, 0}, ticks)
	mu.Unlock()
	require.Equal(t, 1, nav.calls())
	assert.Equal(t, "/login", nav.paths[0])
	assert.Equal(t, NavState{From: "/dashboard/user"}, nav.state[0])
	assert.True(t, c.Fired())
	assert.Equal(t, 0, c.Remaining())
}

func TestCountdown_RutaPersonalizada(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	nav := newNavRecorder()
	c := NewCountdown(CountdownConfig{Seconds: 1, Interval: 5 * time.Millisecond, Path: "/"}, "/dashboard/admin", nav.navigate, nil)
	c.Start()
	<-nav.done
	c.Stop()

	assert.Equal(t, "/", nav.paths[0])
	assert.Equal(t, "/dashboard/admin", nav.state[0].From)
}

func TestCountdown_StopAntesDeExpirarNoNavega(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	nav := newNavRecorder()
	c := NewCountdown(CountdownConfig{Interval: 50 * time.Millisecond}, "/dashboard/user", nav.navigate, nil)
	c.Start()
	c.Stop()

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 0, nav.calls())
	assert.False(t, c.Fired())
	assert.Equal(t, 3, c.Remaining())
}

func TestCountdown_StopEsIdempotenteYSinStart(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	nav := newNavRecorder()
	c := NewCountdown(CountdownConfig{}, "/", nav.navigate, nil)
	c.Stop()
	c.Stop()
	c.Start()
	assert.Equal(t, 0, nav.calls(), "Start después de Stop no hace nada")
}

func TestCountdown_StopDesdeLaNavegacionNoSeBloquea(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var c *Countdown
	done := make(chan struct{})
	c = NewCountdown(CountdownConfig{Seconds: 1, Interval: 5 * time.Millisecond}, "/x", func(string, NavState) {
		c.Stop()
		close(done)
	}, nil)
	c.Start()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop desde la navegación no debe bloquearse")
	}
}

func TestCountdownConfig_Defaults(t *testing.T) {
	cfg := CountdownConfig{}.withDefaults()
	assert.Equal(t, 3, cfg.Seconds)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, "/login", cfg.Target())
}
