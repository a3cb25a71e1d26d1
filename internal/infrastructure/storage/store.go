// Package storage implementa el almacenamiento clave/valor persistente del
// cliente (el equivalente al localStorage del navegador). Un único espacio de
// claves compartido: la sesión y el carrito usan claves distintas y ninguno
// lee ni escribe la clave del otro.
package storage

import (
	"errors"
	"fmt"

	"github.com/jhoicas/storefront/pkg/config"
)

// ErrClosed se devuelve al usar un store ya cerrado.
var ErrClosed = errors.New("storage: store cerrado")

// Store es el puerto del almacenamiento persistente. Los valores son texto
// (JSON serializado por el dueño de la clave); el store no interpreta nada.
type Store interface {
	// Get devuelve el valor y ok=false si la clave no existe.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Open construye el store configurado (file, sqlite, redis o memory).
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "file", "":
		return NewFileStore(cfg.Path), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	case "redis":
		return NewRedisStore(RedisOptions{Addr: cfg.RedisAddr, DB: cfg.RedisDB, Prefix: cfg.Prefix})
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}
