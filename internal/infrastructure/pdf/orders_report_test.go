package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront/internal/application/orders"
	"github.com/jhoicas/storefront/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{in: "0", want: "0"},
		{in: "999", want: "999"},
		{in: "25000", want: "25.000"},
		{in: "1000000", want: "1.000.000"},
		{in: "-1500", want: "-1.500"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatMoney(tc.in), tc.in)
	}
}

func TestGenerateOrdersPDF_ProducePDF(t *testing.T) {
	g := NewMarotoReportGenerator()
	report := orders.Report{
		Title:       "Pedidos",
		GeneratedBy: "Admin",
		GeneratedAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
		Orders: []entity.Order{
			{
				ID:      "o1",
				Status:  "Processing",
				Buyer:   entity.OrderBuyer{ID: "u1", Name: "John Doe"},
				Payment: entity.PaymentInfo{Success: true, Amount: decimal.NewFromInt(1500)},
				Products: []entity.Product{
					{Name: "Laptop", Price: decimal.NewFromInt(1000)},
					{Name: "Mouse", Price: decimal.NewFromInt(500)},
				},
			},
			{ID: "o2", Status: "Not Processed", Buyer: entity.OrderBuyer{Name: "Jane"}},
		},
	}

	out, err := g.GenerateOrdersPDF(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}

func TestGenerateOrdersPDF_SinPedidos(t *testing.T) {
	out, err := NewMarotoReportGenerator().GenerateOrdersPDF(context.Background(), orders.Report{Title: "Vacío"})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateOrdersPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoReportGenerator().GenerateOrdersPDF(ctx, orders.Report{Title: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
