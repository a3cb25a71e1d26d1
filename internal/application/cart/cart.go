// Package cart es el carrito del cliente: persiste en cada cambio bajo su
// propia clave y nunca toca la clave de la sesión.
package cart

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront/internal/application/state"
	"github.com/jhoicas/storefront/internal/domain/entity"
	"github.com/jhoicas/storefront/internal/infrastructure/storage"
)

// DefaultKey clave del registro del carrito.
const DefaultKey = "cart"

// Option configura el carrito.
type Option func(*options)

type options struct {
	key string
	log zerolog.Logger
}

// WithKey cambia la clave de almacenamiento.
func WithKey(key string) Option {
	return func(o *options) { o.key = key }
}

// WithLogger inyecta el logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// Container estado del carrito. Seguro para uso concurrente.
type Container struct {
	c *state.Container[[]entity.CartItem]
}

// New construye el carrito y lo hidrata una vez. Cualquier arreglo JSON
// parseable se acepta; lo demás deja el carrito vacío.
func New(store storage.Store, opts ...Option) *Container {
	o := options{key: DefaultKey, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	persist := state.WriteThrough[[]entity.CartItem](store, o.key, state.WithLogger[[]entity.CartItem](o.log))
	return &Container{c: state.New[[]entity.CartItem](nil, persist)}
}

// Items devuelve una copia de los ítems.
func (k *Container) Items() []entity.CartItem {
	return append([]entity.CartItem(nil), k.c.Get()...)
}

// Set reemplaza el carrito completo.
func (k *Container) Set(items []entity.CartItem) {
	k.c.Set(append([]entity.CartItem(nil), items...))
}

// Add agrega un producto; si ya estaba suma la cantidad.
func (k *Container) Add(item entity.CartItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	items := k.Items()
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity = quantity(items[i]) + item.Quantity
			k.c.Set(items)
			return
		}
	}
	k.c.Set(append(items, item))
}

// Remove quita el producto del carrito.
func (k *Container) Remove(productID string) {
	items := k.Items()
	out := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	k.c.Set(out)
}

// Clear vacía el carrito (el registro queda como arreglo vacío).
func (k *Container) Clear() {
	k.c.Set([]entity.CartItem{})
}

// Count cantidad total de unidades.
func (k *Container) Count() int {
	n := 0
	for _, it := range k.c.Get() {
		n += quantity(it)
	}
	return n
}

// Total suma precio * cantidad.
func (k *Container) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range k.c.Get() {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(quantity(it)))))
	}
	return total
}

// Subscribe notifica cada cambio del carrito.
func (k *Container) Subscribe(fn func([]entity.CartItem)) (unsubscribe func()) {
	return k.c.Subscribe(func(items []entity.CartItem) {
		fn(append([]entity.CartItem(nil), items...))
	})
}

// Los registros sin cantidad cuentan como una unidad.
func quantity(it entity.CartItem) int {
	if it.Quantity <= 0 {
		return 1
	}
	return it.Quantity
}
