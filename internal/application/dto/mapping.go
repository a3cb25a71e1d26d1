package dto

import "github.com/jhoicas/storefront/internal/domain/entity"

// Conversión entidad <-> DTO. El backend serializa con From*, el cliente
// reconstruye entidades con los métodos Entity().

// FromProduct convierte un producto del dominio a su salida HTTP.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Quantity:    p.Quantity,
		Shipping:    p.Shipping,
		CreatedAt:   p.CreatedAt,
	}
}

// Entity reconstruye el producto del dominio.
func (r ProductResponse) Entity() entity.Product {
	return entity.Product{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Quantity:    r.Quantity,
		Shipping:    r.Shipping,
		CreatedAt:   r.CreatedAt,
	}
}

// FromOrder convierte un pedido del dominio a su salida HTTP.
func FromOrder(o *entity.Order) OrderResponse {
	products := make([]ProductResponse, 0, len(o.Products))
	for i := range o.Products {
		products = append(products, FromProduct(&o.Products[i]))
	}
	return OrderResponse{
		ID:     o.ID,
		Status: o.Status,
		Buyer:  BuyerResponse{ID: o.Buyer.ID, Name: o.Buyer.Name},
		Payment: PaymentResponse{
			Success:       o.Payment.Success,
			TransactionID: o.Payment.TransactionID,
			Amount:        o.Payment.Amount,
		},
		Products:  products,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// Entity reconstruye el pedido del dominio.
func (r OrderResponse) Entity() entity.Order {
	products := make([]entity.Product, 0, len(r.Products))
	for _, p := range r.Products {
		products = append(products, p.Entity())
	}
	return entity.Order{
		ID:     r.ID,
		Status: r.Status,
		Buyer:  entity.OrderBuyer{ID: r.Buyer.ID, Name: r.Buyer.Name},
		Payment: entity.PaymentInfo{
			Success:       r.Payment.Success,
			TransactionID: r.Payment.TransactionID,
			Amount:        r.Payment.Amount,
		},
		Products:  products,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
