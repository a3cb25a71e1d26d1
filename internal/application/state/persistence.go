package state

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront/internal/infrastructure/storage"
)

type noPersistence[T any] struct{}

// NoPersistence política para estado que no sobrevive a un reinicio (buscador).
func NoPersistence[T any]() Persistence[T] { return noPersistence[T]{} }

func (noPersistence[T]) Load() (T, bool) {
	var zero T
	return zero, false
}

func (noPersistence[T]) Save(T) {}

// WriteThroughOption configura la política write-through.
type WriteThroughOption[T any] func(*writeThrough[T])

// WithValidator descarta registros que parsean pero no tienen la forma esperada.
func WithValidator[T any](valid func(T) bool) WriteThroughOption[T] {
	return func(w *writeThrough[T]) { w.valid = valid }
}

// WithLogger registra fallos de lectura/escritura.
func WithLogger[T any](log zerolog.Logger) WriteThroughOption[T] {
	return func(w *writeThrough[T]) { w.log = log }
}

type writeThrough[T any] struct {
	store storage.Store
	key   string
	valid func(T) bool
	log   zerolog.Logger
}

// WriteThrough política que hidrata desde key y escribe el JSON completo en cada Set.
// Un registro ausente, ilegible o con forma inválida se trata como inexistente.
func WriteThrough[T any](store storage.Store, key string, opts ...WriteThroughOption[T]) Persistence[T] {
	w := &writeThrough[T]{store: store, key: key, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *writeThrough[T]) Load() (T, bool) {
	var zero T
	raw, ok, err := w.store.Get(w.key)
	if err != nil {
		w.log.Warn().Err(err).Str("key", w.key).Msg("no se pudo leer el registro persistido; se usa el valor por defecto")
		return zero, false
	}
	if !ok {
		return zero, false
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		w.log.Debug().Err(err).Str("key", w.key).Msg("registro persistido malformado; se ignora")
		return zero, false
	}
	if w.valid != nil && !w.valid(v) {
		w.log.Debug().Str("key", w.key).Msg("registro persistido con forma inválida; se ignora")
		return zero, false
	}
	return v, true
}

func (w *writeThrough[T]) Save(v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		w.log.Error().Err(err).Str("key", w.key).Msg("no se pudo serializar el estado")
		return
	}
	if err := w.store.Set(w.key, string(raw)); err != nil {
		w.log.Warn().Err(err).Str("key", w.key).Msg("no se pudo persistir el estado")
	}
}
