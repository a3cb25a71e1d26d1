package console

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// NavState estado que acompaña una navegación: la ubicación de origen.
type NavState struct {
	From string
}

// CountdownConfig valores por defecto: 3 pasos de 1s hacia /login.
type CountdownConfig struct {
	Seconds  int
	Interval time.Duration
	Path     string
}

func (c CountdownConfig) withDefaults() CountdownConfig {
	if c.Seconds <= 0 {
		c.Seconds = 3
	}
	if c.Interval <= 0 {
		c.Interval = time.Second
	}
	if c.Path == "" {
		c.Path = "login"
	}
	return c
}

// Target ruta absoluta del destino.
func (c CountdownConfig) Target() string {
	return "/" + strings.TrimPrefix(c.Path, "/")
}

// Countdown cuenta regresiva cancelable que termina navegando al destino con
// la ubicación de origen. Es dueña de su goroutine: Stop la detiene y espera.
type Countdown struct {
	cfg      CountdownConfig
	from     string
	navigate func(path string, st NavState)
	onTick   func(remaining int)

	mu        sync.Mutex
	remaining int
	started   bool
	stopped   bool
	fired     bool
	stop      chan struct{}
	done      chan struct{}
}

// NewCountdown construye la cuenta; onTick puede ser nil.
func NewCountdown(cfg CountdownConfig, from string, navigate func(path string, st NavState), onTick func(remaining int)) *Countdown {
	cfg = cfg.withDefaults()
	if onTick == nil {
		onTick = func(int) {}
	}
	return &Countdown{
		cfg:       cfg,
		from:      from,
		navigate:  navigate,
		onTick:    onTick,
		remaining: cfg.Seconds,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Remaining valor actual de la cuenta.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Fired indica si la cuenta llegó a cero y navegó.
func (c *Countdown) Fired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fired
}

// Start arranca la cuenta. Llamadas repetidas o posteriores a Stop no hacen nada.
func (c *Countdown) Start() {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	go c.run()
}

func (c *Countdown) run() {
	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			close(c.done)
			return
		case <-ticker.C:
		}

		c.mu.Lock()
		if c.stopped {
			c.mu.Unlock()
			close(c.done)
			return
		}
		c.remaining--
		n := c.remaining
		if n <= 0 {
			c.fired = true
		}
		c.mu.Unlock()

		c.onTick(n)
		if n <= 0 {
			// done se cierra antes de navegar: la navegación desmonta al dueño,
			// que llama a Stop desde esta misma goroutine.
			close(c.done)
			c.navigate(c.cfg.Target(), NavState{From: c.from})
			return
		}
	}
}

// Stop cancela la cuenta y espera a la goroutine. Antes de llegar a cero
// impide la navegación. Idempotente.
func (c *Countdown) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		if c.started {
			<-c.done
		}
		return
	}
	c.stopped = true
	started := c.started
	close(c.stop)
	c.mu.Unlock()

	if started {
		<-c.done
	}
}

// Text texto que muestra la vista mientras corre la cuenta.
func (c *Countdown) Text() string {
	return redirectText(c.Remaining())
}

func redirectText(n int) string {
	return "redirecting to you in " + strconv.Itoa(n) + " second"
}
