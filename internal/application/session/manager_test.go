package session_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront/internal/application/session"
	"github.com/jhoicas/storefront/internal/domain/entity"
	"github.com/jhoicas/storefront/internal/infrastructure/storage"
)

func johnDoe() entity.Session {
	return entity.Session{
		User:  &entity.UserProfile{Name: "John Doe", Email: "john@example.com", Role: entity.RoleUser},
		Token: "t",
	}
}

// failingStore simula un almacenamiento no disponible.
type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, assert.AnError }
func (failingStore) Set(string, string) error         { return assert.AnError }
func (failingStore) Remove(string) error              { return assert.AnError }
func (failingStore) Close() error                     { return nil }

func TestNewManager_RegistroAusenteOMalformado(t *testing.T) {
	cases := []struct {
		name string
		raw  *string
	}{
		{name: "ausente"},
		{name: "vacio", raw: ptr("")},
		{name: "json invalido", raw: ptr("{user:")},
		{name: "tipo incorrecto", raw: ptr(`"hola"`)},
		{name: "arreglo", raw: ptr(`[1,2,3]`)},
		{name: "user no es objeto", raw: ptr(`{"user":"john","token":"t"}`)},
		{name: "token sin usuario", raw: ptr(`{"user":null,"token":"t"}`)},
		{name: "usuario sin token", raw: ptr(`{"user":{"name":"x"},"token":""}`)},
		{name: "null literal", raw: ptr(`null`)},
		{name: "forma desconocida", raw: ptr(`{"foo":1}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			if tc.raw != nil {
				require.NoError(t, store.Set(session.DefaultKey, *tc.raw))
			}
			var m *session.Manager
			require.NotPanics(t, func() { m = session.NewManager(store) })
			got := m.Session()
			assert.Nil(t, got.User)
			assert.Empty(t, got.Token)
		})
	}
}

func TestNewManager_AlmacenamientoCaido(t *testing.T) {
	m := session.NewManager(failingStore{})
	assert.False(t, m.Session().Authenticated())
	assert.NotPanics(t, func() { m.SetSession(johnDoe()) }, "un fallo al persistir no se propaga")
	assert.Equal(t, "John Doe", m.Session().User.Name, "el estado en memoria igual se actualiza")
}

func TestNewManager_SinRegistroNoEscribe(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = session.NewManager(store)
	_, ok, err := store.Get(session.DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok, "la hidratación no debe escribir el estado inicial")
}

func TestNewManager_HidrataRegistroValido(t *testing.T) {
	store := storage.NewMemoryStore()
	raw, err := json.Marshal(johnDoe())
	require.NoError(t, err)
	require.NoError(t, store.Set(session.DefaultKey, string(raw)))

	m := session.NewManager(store)
	got := m.Session()
	require.NotNil(t, got.User)
	assert.Equal(t, "John Doe", got.User.Name)
	assert.Equal(t, "t", got.Token)
}

func TestSetSession_LecturaYRegistroIgualesANext(t *testing.T) {
	store := storage.NewMemoryStore()
	m := session.NewManager(store)

	for _, next := range []entity.Session{johnDoe(), {}, johnDoe()} {
		m.SetSession(next)
		assert.True(t, next.Equal(m.Session()), "la lectura posterior devuelve exactamente next")

		want, err := json.Marshal(next)
		require.NoError(t, err)
		raw, ok, err := store.Get(session.DefaultKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, string(want), raw)
	}
}

func TestSetSession_CopiaDefensiva(t *testing.T) {
	m := session.NewManager(storage.NewMemoryStore())
	next := johnDoe()
	m.SetSession(next)
	next.User.Name = "Mutado"
	got := m.Session()
	assert.Equal(t, "John Doe", got.User.Name)
	got.User.Name = "Otro"
	assert.Equal(t, "John Doe", m.Session().User.Name)
}

func TestSetSession_UsaClavePropia(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("cart", `[{"id":"p1"}]`))
	m := session.NewManager(store, session.WithKey("auth-alt"))
	m.SetSession(johnDoe())

	cart, _, err := store.Get("cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p1"}]`, cart, "la sesión nunca toca la clave del carrito")
	_, ok, _ := store.Get("auth-alt")
	assert.True(t, ok)
}

func TestObservers_OrdenYSesionHidratada(t *testing.T) {
	store := storage.NewMemoryStore()
	raw, _ := json.Marshal(johnDoe())
	require.NoError(t, store.Set(session.DefaultKey, string(raw)))

	var calls []string
	first := session.ObserverFunc(func(s entity.Session) { calls = append(calls, "first:"+s.Token) })
	m := session.NewManager(store, session.WithObserver(first))
	require.Equal(t, []string{"first:t"}, calls, "el observador inicial recibe la sesión hidratada")

	unsubscribe := m.Subscribe(session.ObserverFunc(func(s entity.Session) { calls = append(calls, "second:"+s.Token) }))
	m.SetSession(entity.Session{})
	assert.Equal(t, []string{"first:t", "first:", "second:"}, calls)

	unsubscribe()
	m.SetSession(johnDoe())
	assert.Equal(t, []string{"first:t", "first:", "second:", "first:t"}, calls)
}

func TestFromContext_SinProveedor(t *testing.T) {
	_, err := session.FromContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be used within an AuthProvider")
	assert.Panics(t, func() { session.MustFromContext(context.Background()) })

	m := session.NewManager(storage.NewMemoryStore())
	got, err := session.FromContext(session.NewContext(context.Background(), m))
	require.NoError(t, err)
	assert.Same(t, m, got)
}

func ptr(s string) *string { return &s }
