package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-bizmanager/internal/invoice"
	"go-bizmanager/internal/repository"
	"go-bizmanager/internal/storage"
	"go-bizmanager/pkg/apperror"
)

type InvoiceService interface {
	Generate(ctx context.Context, orderID uuid.UUID) (*InvoiceInfo, error)
	Download(ctx context.Context, orderID uuid.UUID) (*InvoiceFile, error)
}

type InvoiceInfo struct {
	InvoiceNumber string `json:"invoice_number"`
	FileName      string `json:"file_name"`
	DownloadURL   string `json:"download_url"`
}

type InvoiceFile struct {
	FileName string
	Content  []byte
}

type invoiceService struct {
	orderRepo repository.OrderRepository
	store     storage.Store
	renderer  invoice.Renderer
	seller    invoice.Seller
	currency  string
}

func NewInvoiceService(oRepo repository.OrderRepository, store storage.Store, renderer invoice.Renderer, seller invoice.Seller, currency string) InvoiceService {
	return &invoiceService{
		orderRepo: oRepo,
		store:     store,
		renderer:  renderer,
		seller:    seller,
		currency:  currency,
	}
}

func invoiceFileName(invoiceNumber string) string {
	return fmt.Sprintf("invoice-%s.pdf", invoiceNumber)
}

// Generate renders the order's invoice and stores it, replacing any earlier render.
func (s *invoiceService) Generate(ctx context.Context, orderID uuid.UUID) (*InvoiceInfo, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, notFound(err, "Order")
	}

	content, err := s.renderer.Bytes(invoice.Build(order, s.seller, s.currency))
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to generate invoice")
	}

	name := invoiceFileName(order.InvoiceNumber)
	if err := s.store.Save(ctx, name, content); err != nil {
		return nil, apperror.Wrap(err, "Failed to store invoice")
	}

	zap.L().Info("invoice generated",
		zap.String("invoice_number", order.InvoiceNumber),
		zap.Int("bytes", len(content)))

	return &InvoiceInfo{
		InvoiceNumber: order.InvoiceNumber,
		FileName:      name,
		DownloadURL:   fmt.Sprintf("/api/orders/%s/invoice/download", order.ID),
	}, nil
}

// Download returns a previously generated invoice. It never renders on demand.
func (s *invoiceService) Download(ctx context.Context, orderID uuid.UUID) (*InvoiceFile, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, notFound(err, "Order")
	}

	name := invoiceFileName(order.InvoiceNumber)
	content, err := s.store.Open(ctx, name)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, apperror.NotFound("Invoice not found, generate it first")
	}
	if err != nil {
		return nil, apperror.Wrap(err, "Failed to read invoice")
	}

	return &InvoiceFile{FileName: name, Content: content}, nil
}
