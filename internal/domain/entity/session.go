package entity

// Session es la identidad actual del cliente: usuario + token.
// User != nil significa "autenticado localmente"; el acceso a rutas protegidas
// exige además la verificación en el servidor.
type Session struct {
	User  *UserProfile `json:"user"`
	Token string       `json:"token"`
}

// Authenticated indica si hay un usuario en la sesión local.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// HasToken indica si la sesión trae un token que se pueda verificar.
func (s Session) HasToken() bool {
	return s.Token != ""
}

// Clone devuelve una copia profunda para que los lectores no compartan el perfil.
func (s Session) Clone() Session {
	out := Session{Token: s.Token}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

// Equal compara dos sesiones por valor.
func (s Session) Equal(o Session) bool {
	if s.Token != o.Token {
		return false
	}
	if s.User == nil || o.User == nil {
		return s.User == nil && o.User == nil
	}
	return *s.User == *o.User
}
