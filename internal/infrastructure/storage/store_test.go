package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront/internal/infrastructure/storage"
	"github.com/jhoicas/storefront/pkg/config"
)

// Contrato común: todos los drivers deben comportarse igual.
func runStoreContract(t *testing.T, s storage.Store) {
	t.Helper()

	_, ok, err := s.Get("auth")
	require.NoError(t, err)
	assert.False(t, ok, "una clave inexistente debe devolver ok=false")

	require.NoError(t, s.Set("auth", `{"user":null,"token":""}`))
	require.NoError(t, s.Set("cart", `[]`))

	v, ok, err := s.Get("auth")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"user":null,"token":""}`, v)

	require.NoError(t, s.Set("auth", `{"user":{"name":"Ana"},"token":"t"}`))
	v, _, err = s.Get("auth")
	require.NoError(t, err)
	assert.Equal(t, `{"user":{"name":"Ana"},"token":"t"}`, v, "Set debe sobrescribir")

	require.NoError(t, s.Remove("auth"))
	_, ok, err = s.Get("auth")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = s.Get("cart")
	require.NoError(t, err)
	assert.True(t, ok, "borrar una clave no debe tocar las demás")
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Remove("no-existe"), "Remove de clave inexistente no falla")
}

func TestMemoryStore_Contrato(t *testing.T) {
	s := storage.NewMemoryStore()
	runStoreContract(t, s)
	require.NoError(t, s.Close())
	_, _, err := s.Get("cart")
	assert.ErrorIs(t, err, storage.ErrClosed)
}

func TestFileStore_Contrato(t *testing.T) {
	s := storage.NewFileStore(filepath.Join(t.TempDir(), "nested", "state.json"))
	runStoreContract(t, s)
}

func TestFileStore_PersisteEntreInstancias(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, storage.NewFileStore(path).Set("auth", `{"token":"abc"}`))

	v, ok, err := storage.NewFileStore(path).Get("auth")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"token":"abc"}`, v)
}

func TestFileStore_ArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{no es json"), 0o600))
	s := storage.NewFileStore(path)

	_, _, err := s.Get("auth")
	assert.Error(t, err, "un archivo corrupto se reporta al dueño de la clave")

	require.NoError(t, s.Set("auth", `{}`), "Set reemplaza el archivo corrupto")
	v, ok, err := s.Get("auth")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{}`, v)
}

func TestSQLiteStore_Contrato(t *testing.T) {
	s, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer s.Close()
	runStoreContract(t, s)
}

func TestRedisStore_Contrato(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := storage.NewRedisStore(storage.RedisOptions{Addr: mr.Addr(), Prefix: "sf:"})
	require.NoError(t, err)
	defer s.Close()
	runStoreContract(t, s)

	require.NoError(t, s.Set("cart", `[1]`))
	raw, err := mr.Get("sf:cart")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, raw, "las claves se guardan con prefijo")
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := storage.Open(config.StorageConfig{Driver: "etcd"})
	assert.Error(t, err)
}

func TestOpen_Memory(t *testing.T) {
	s, err := storage.Open(config.StorageConfig{Driver: "memory"})
	require.NoError(t, err)
	_, isMem := s.(*storage.MemoryStore)
	assert.True(t, isMem)
}
