// Package state contiene el contenedor de estado genérico que comparten la
// sesión, el carrito y el buscador: un valor, su setter y una política de
// persistencia explícita.
package state

import (
	"sync"
)

// Persistence decide cómo se hidrata y se guarda el valor de un contenedor.
type Persistence[T any] interface {
	// Load devuelve el valor guardado; ok=false si no hay registro utilizable.
	Load() (value T, ok bool)
	// Save persiste el valor (best effort: los errores se registran, no se propagan).
	Save(value T)
}

// Container guarda un valor reemplazable por completo y notifica a sus suscriptores.
// Los valores se tratan como inmutables: Set reemplaza, nunca parchea.
type Container[T any] struct {
	mu       sync.RWMutex
	value    T
	persist  Persistence[T]
	subs     map[uint64]func(T)
	order    []uint64
	nextSub  uint64
	notifyMu sync.Mutex
}

// New construye el contenedor con def como valor por defecto y lo hidrata una sola vez.
func New[T any](def T, persist Persistence[T]) *Container[T] {
	if persist == nil {
		persist = NoPersistence[T]()
	}
	c := &Container[T]{value: def, persist: persist, subs: make(map[uint64]func(T))}
	if v, ok := persist.Load(); ok {
		c.value = v
	}
	return c
}

// Get devuelve el valor actual.
func (c *Container[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set reemplaza el valor de forma síncrona; después persiste y notifica en orden de suscripción.
func (c *Container[T]) Set(next T) {
	// notifyMu serializa persistencia + notificación para que los observadores
	// vean los cambios en el mismo orden en que se aplicaron.
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.value = next
	subs := make([]func(T), 0, len(c.order))
	for _, id := range c.order {
		subs = append(subs, c.subs[id])
	}
	c.mu.Unlock()

	c.persist.Save(next)
	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registra fn para cada Set posterior. Devuelve la función para desuscribirse.
func (c *Container[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.order = append(c.order, id)
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			for i, v := range c.order {
				if v == id {
					c.order = append(c.order[:i:i], c.order[i+1:]...)
					break
				}
			}
		})
	}
}
