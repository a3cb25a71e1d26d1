// Package apiclient es el cliente HTTP de la consola contra la API de la
// tienda. Usa net/http de la stdlib; la autorización la aplica el Authorizer
// como transport, nunca cada llamada.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront/internal/application/dto"
	"github.com/jhoicas/storefront/internal/domain/entity"
)

// Client llamadas tipadas a la API (base: .../api/v1).
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// New construye el cliente. auth es el transport que aplica los headers por defecto.
func New(baseURL string, auth *Authorizer, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Transport: auth, Timeout: timeout},
		log:        log,
	}
}

// Login POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register POST /auth/register.
func (c *Client) Register(ctx context.Context, in dto.RegisterRequest) (*entity.UserProfile, error) {
	var out entity.UserProfile
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile PUT /auth/profile.
func (c *Client) UpdateProfile(ctx context.Context, in dto.UpdateProfileRequest) (*entity.UserProfile, error) {
	var out entity.UserProfile
	if err := c.do(ctx, http.MethodPut, "/auth/profile", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserAuth GET /auth/user-auth con el token del header por defecto.
func (c *Client) UserAuth(ctx context.Context) (bool, error) {
	return c.authCheck(ctx, "/auth/user-auth")
}

// AdminAuth GET /auth/admin-auth (verificación con alcance de administrador).
func (c *Client) AdminAuth(ctx context.Context) (bool, error) {
	return c.authCheck(ctx, "/auth/admin-auth")
}

func (c *Client) authCheck(ctx context.Context, path string) (bool, error) {
	var out dto.AuthCheckResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return false, err
	}
	return out.OK, nil
}

// ListOrders GET /orders (el backend limita por identidad). Se respeta el orden del servidor.
func (c *Client) ListOrders(ctx context.Context) ([]entity.Order, error) {
	var out []dto.OrderResponse
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	orders := make([]entity.Order, 0, len(out))
	for _, o := range out {
		orders = append(orders, o.Entity())
	}
	return orders, nil
}

// OrderStatuses GET /orders/statuses.
func (c *Client) OrderStatuses(ctx context.Context) ([]string, error) {
	var out dto.OrderStatusesResponse
	if err := c.do(ctx, http.MethodGet, "/orders/statuses", nil, &out); err != nil {
		return nil, err
	}
	return out.Statuses, nil
}

// UpdateOrderStatus PUT /orders/:id/status; devuelve el pedido autoritativo.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) (entity.Order, error) {
	var out dto.OrderResponse
	path := "/orders/" + url.PathEscape(orderID) + "/status"
	if err := c.do(ctx, http.MethodPut, path, dto.UpdateOrderStatusRequest{Status: status}, &out); err != nil {
		return entity.Order{}, err
	}
	return out.Entity(), nil
}

// SearchProducts GET /products/search/:keyword.
func (c *Client) SearchProducts(ctx context.Context, keyword string) ([]entity.Product, error) {
	var out []dto.ProductResponse
	if err := c.do(ctx, http.MethodGet, "/products/search/"+url.PathEscape(keyword), nil, &out); err != nil {
		return nil, err
	}
	return toProducts(out), nil
}

// CategoryProducts GET /products/category/:slug.
func (c *Client) CategoryProducts(ctx context.Context, slug string) (entity.Category, []entity.Product, error) {
	var out dto.CategoryProductsResponse
	if err := c.do(ctx, http.MethodGet, "/products/category/"+url.PathEscape(slug), nil, &out); err != nil {
		return entity.Category{}, nil, err
	}
	cat := entity.Category{ID: out.Category.ID, Name: out.Category.Name, Slug: out.Category.Slug}
	return cat, toProducts(out.Products), nil
}

func toProducts(in []dto.ProductResponse) []entity.Product {
	out := make([]entity.Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.Entity())
	}
	return out
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: construir petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("respuesta API")

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("api: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var body dto.ErrorResponse
		if json.Unmarshal(raw, &body) == nil {
			apiErr.Code = body.Code
			apiErr.Message = body.Message
		}
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: respuesta inválida en %s %s: %w", method, path, err)
	}
	return nil
}
