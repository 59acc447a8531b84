package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bizmanager/internal/invoice"
	"go-bizmanager/internal/repository"
	"go-bizmanager/internal/testutil"
	"go-bizmanager/pkg/apperror"
)

func TestInvoiceGenerateThenDownload(t *testing.T) {
	orders, db, _ := newOrderService(t)
	p := testutil.SeedProduct(t, db, "P-001", "1000", 5)
	gone := testutil.SeedProduct(t, db, "OLD-1", "25", 5)
	ctx := context.Background()

	order, err := orders.CreateOrder(ctx, orderRequest(
		OrderItemRequest{ProductID: p.ID, Quantity: 3},
		OrderItemRequest{ProductID: gone.ID, Quantity: 2},
	), employee)
	require.NoError(t, err)
	require.NoError(t, repository.NewProductRepo(db).Delete(gone.ID))

	store := newMemStore()
	svc := NewInvoiceService(repository.NewOrderRepo(db), store, invoice.Renderer{Compress: false},
		invoice.Seller{Name: "Acme Trading", Address: "1 Market Road", City: "Dakar", Email: "billing@acme.test"}, "FCFA")

	_, err = svc.Download(ctx, order.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound, "download never renders on demand")

	info, err := svc.Generate(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-2610-0001", info.InvoiceNumber)
	assert.Equal(t, "invoice-INV-2610-0001.pdf", info.FileName)
	assert.Equal(t, "/api/orders/"+order.ID.String()+"/invoice/download", info.DownloadURL)

	file, err := svc.Download(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, info.FileName, file.FileName)
	for _, want := range []string{"P-001", "3000.00 FCFA", "Deleted product", "50.00 FCFA", "3050.00 FCFA", "Jane Buyer"} {
		assert.True(t, bytes.Contains(file.Content, []byte(want)), "missing %q", want)
	}

	again, err := svc.Generate(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, info.FileName, again.FileName)
	assert.Len(t, store.files, 1)
}

func TestInvoiceUnknownOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewInvoiceService(repository.NewOrderRepo(db), newMemStore(), invoice.NewRenderer(), invoice.Seller{}, "FCFA")

	_, err := svc.Generate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Download(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
