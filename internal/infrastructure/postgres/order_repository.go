package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/storefront/internal/domain"
	"github.com/jhoicas/storefront/internal/domain/entity"
	"github.com/jhoicas/storefront/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderSelect = `
	SELECT o.id, o.status, o.buyer_id, u.name,
	       o.payment_success, o.payment_transaction_id, o.payment_amount,
	       o.created_at, o.updated_at
	FROM orders o
	JOIN users u ON u.id = o.buyer_id`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Los productos del pedido viven en order_products y se cargan en una sola consulta.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste el pedido y sus productos en una transacción.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return RunInTx(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (id, status, buyer_id, payment_success, payment_transaction_id, payment_amount, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			o.ID, o.Status, o.Buyer.ID, o.Payment.Success, o.Payment.TransactionID, o.Payment.Amount,
			o.CreatedAt, o.UpdatedAt,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("comprador %q: %w", o.Buyer.ID, domain.ErrInvalidInput)
			}
			return fmt.Errorf("insert order: %w", err)
		}
		batch := &pgx.Batch{}
		for i, p := range o.Products {
			batch.Queue(`INSERT INTO order_products (order_id, position, product_id) VALUES ($1, $2, $3)`, o.ID, i, p.ID)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("producto del pedido: %w", domain.ErrInvalidInput)
			}
			return fmt.Errorf("insert order products: %w", err)
		}
		return nil
	})
}

// GetByID obtiene un pedido; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	list, err := r.list(ctx, orderSelect+` WHERE o.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ListAll todos los pedidos, más recientes primero.
func (r *OrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, orderSelect+` ORDER BY o.created_at DESC, o.id DESC`)
}

// ListByBuyer pedidos del comprador, más recientes primero.
func (r *OrderRepo) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	return r.list(ctx, orderSelect+` WHERE o.buyer_id = $1 ORDER BY o.created_at DESC, o.id DESC`, buyerID)
}

// UpdateStatus cambia el estado y devuelve el pedido actualizado; (nil, nil) si no existe.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now())
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Order, 0)
	byID := make(map[string]*entity.Order)
	ids := make([]string, 0)
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.Status, &o.Buyer.ID, &o.Buyer.Name,
			&o.Payment.Success, &o.Payment.TransactionID, &o.Payment.Amount,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Products = []entity.Product{}
		out = append(out, &o)
		byID[o.ID] = &o
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.loadProducts(ctx, ids, byID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *OrderRepo) loadProducts(ctx context.Context, ids []string, byID map[string]*entity.Order) error {
	query := `
		SELECT op.order_id, ` + prefixed("p", productColumns) + `
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = ANY($1)
		ORDER BY op.order_id, op.position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list order products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			orderID string
			p       entity.Product
		)
		if err := rows.Scan(&orderID,
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Category, &p.Quantity, &p.Shipping,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return fmt.Errorf("scan order product: %w", err)
		}
		o, ok := byID[orderID]
		if !ok {
			return errors.New("order product sin pedido")
		}
		o.Products = append(o.Products, p)
	}
	return rows.Err()
}
