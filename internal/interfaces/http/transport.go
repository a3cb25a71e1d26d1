package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// InProcessTransport sirve las peticiones del cliente directamente con app.Test,
// sin abrir sockets. Lo usan la consola en modo embebido y los tests.
type InProcessTransport struct {
	App *fiber.App
}

// RoundTrip implementa http.RoundTripper.
func (t *InProcessTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, err
	}
	// app.Test agrega headers: se trabaja sobre una copia.
	r := req.Clone(req.Context())
	resp, err := t.App.Test(r, -1)
	if err != nil {
		return nil, err
	}
	if err := req.Context().Err(); err != nil {
		resp.Body.Close()
		return nil, err
	}
	resp.Request = req
	return resp, nil
}
