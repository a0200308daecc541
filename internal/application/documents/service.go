// Package documents gestiona el ciclo de vida previo a la contabilización:
// alta de documentos, líneas y conversiones oferta -> pedido -> factura.
package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/application/fx"
	"github.com/jhoicas/erp-posting/internal/application/numbering"
	"github.com/jhoicas/erp-posting/internal/application/ports"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/money"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

// Service casos de uso de documentos de venta y compra.
type Service struct {
	txRunner ports.TxRunner
	now      func() time.Time
}

// NewService construye el servicio.
func NewService(txRunner ports.TxRunner) *Service {
	return &Service{txRunner: txRunner, now: time.Now}
}

// CreateSalesInput alta de documento de venta. State vacío = oferta.
type CreateSalesInput struct {
	CompanyID         string
	DebtorID          string
	DocType           entity.DocType
	State             entity.SalesState
	Date              time.Time
	Currency          string
	CreditsDocumentID string
}

// CreateSales crea el documento y asigna los números que correspondan al
// estado inicial (un pedido recibe número de pedido, una factura los dos).
func (s *Service) CreateSales(ctx context.Context, in CreateSalesInput) (*entity.SalesDocument, error) {
	if in.CompanyID == "" || in.DebtorID == "" {
		return nil, domain.ErrInvalidInput
	}
	state := in.State
	if state == "" {
		state = entity.SalesOffer
	}
	if state != entity.SalesOffer && state != entity.SalesOrder && state != entity.SalesInvoice {
		return nil, domain.Invalid(domain.ErrInvalidTransition, "no se puede crear un documento en estado %s", state)
	}
	docType := in.DocType
	if docType == "" {
		docType = entity.DocInvoice
	}
	if docType != entity.DocInvoice && docType != entity.DocCreditNote {
		return nil, domain.Invalid(domain.ErrInvalidInput, "tipo de documento %q", docType)
	}

	var out *entity.SalesDocument
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		company, err := loadCompany(ctx, r, in.CompanyID)
		if err != nil {
			return err
		}
		debtor, err := r.Debtors.GetByID(ctx, in.DebtorID)
		if err != nil {
			return err
		}
		if debtor == nil || debtor.CompanyID != company.ID {
			return domain.Invalid(domain.ErrNotFound, "cliente %s", in.DebtorID)
		}
		cur, err := documentCurrency(company, in.Currency)
		if err != nil {
			return err
		}
		now := s.now()
		doc := &entity.SalesDocument{
			ID:                uuid.New().String(),
			CompanyID:         company.ID,
			DebtorID:          debtor.ID,
			DocType:           docType,
			State:             entity.SalesOffer,
			Date:              documentDate(in.Date, now),
			Currency:          cur,
			CreditsDocumentID: in.CreditsDocumentID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		switch state {
		case entity.SalesOffer:
			if doc.OfferNo, err = allocateOffer(ctx, r, company); err != nil {
				return err
			}
		case entity.SalesOrder:
			if doc.OrderNo, err = numbering.AllocateInTx(ctx, r.NumberSeries, company.ID, company.SeriesSalesOrder); err != nil {
				return err
			}
		case entity.SalesInvoice:
			if doc.OrderNo, err = numbering.AllocateInTx(ctx, r.NumberSeries, company.ID, company.SeriesSalesOrder); err != nil {
				return err
			}
			if doc.InvoiceNo, err = numbering.AllocateInTx(ctx, r.NumberSeries, company.ID, company.SeriesSalesInvoice); err != nil {
				return err
			}
		}
		doc.State = state
		if err := r.SalesDocuments.Create(ctx, doc); err != nil {
			return fmt.Errorf("create sales document: %w", err)
		}
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LineInput línea nueva. Descripción y precio/costo vacíos se toman del artículo.
type LineInput struct {
	ItemID      string
	Description string
	Qty         decimal.Decimal
	Price       decimal.Decimal
	Discount    decimal.Decimal
	VatCodeID   string
}

func (in LineInput) validate() error {
	if in.ItemID == "" {
		return domain.Invalid(domain.ErrInvalidInput, "la línea necesita un artículo")
	}
	if !in.Qty.IsPositive() {
		return domain.Invalid(domain.ErrInvalidInput, "la cantidad debe ser positiva")
	}
	if in.Discount.IsNegative() || in.Discount.GreaterThan(decimal.NewFromInt(1)) {
		return domain.Invalid(domain.ErrInvalidInput, "el descuento debe estar entre 0 y 1")
	}
	return nil
}

// AddSalesLine agrega una línea a un documento de venta no contabilizado.
func (s *Service) AddSalesLine(ctx context.Context, documentID string, in LineInput) (*entity.SalesDocument, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var out *entity.SalesDocument
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		doc, err := r.SalesDocuments.GetForUpdate(ctx, documentID)
		if err != nil {
			return fmt.Errorf("lock sales document: %w", err)
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.IsPosted() {
			return domain.Invalid(domain.ErrAlreadyPosted, "documento %s", doc.ID)
		}
		item, err := loadItem(ctx, r, doc.CompanyID, in.ItemID)
		if err != nil {
			return err
		}
		line := entity.SalesLine{
			ID:          uuid.New().String(),
			DocumentID:  doc.ID,
			LineNo:      doc.NextLineNo(),
			ItemID:      item.ID,
			Description: orDefault(in.Description, item.Name),
			Qty:         money.Qty(in.Qty),
			UnitPrice:   priceOrDefault(in.Price, item.SalesPrice),
			Discount:    in.Discount,
			VatCodeID:   in.VatCodeID,
		}
		if err := r.SalesDocuments.AddLine(ctx, &line); err != nil {
			return fmt.Errorf("add sales line: %w", err)
		}
		doc.Lines = append(doc.Lines, line)
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ConvertToOrder oferta -> pedido. Asigna número de oferta si faltaba y número de pedido.
func (s *Service) ConvertToOrder(ctx context.Context, documentID string) (*entity.SalesDocument, error) {
	return s.convertSales(ctx, documentID, entity.SalesOrder, func(ctx context.Context, r repository.Repos, c *entity.Company, d *entity.SalesDocument) error {
		var err error
		if d.OfferNo == "" {
			if d.OfferNo, err = allocateOffer(ctx, r, c); err != nil {
				return err
			}
		}
		d.OrderNo, err = numbering.AllocateInTx(ctx, r.NumberSeries, c.ID, c.SeriesSalesOrder)
		return err
	})
}

// ConvertToInvoice pedido -> factura. Asigna número de pedido si faltaba y número de factura.
func (s *Service) ConvertToInvoice(ctx context.Context, documentID string) (*entity.SalesDocument, error) {
	return s.convertSales(ctx, documentID, entity.SalesInvoice, func(ctx context.Context, r repository.Repos, c *entity.Company, d *entity.SalesDocument) error {
		var err error
		if d.OrderNo == "" {
			if d.OrderNo, err = numbering.AllocateInTx(ctx, r.NumberSeries, c.ID, c.SeriesSalesOrder); err != nil {
				return err
			}
		}
		d.InvoiceNo, err = numbering.AllocateInTx(ctx, r.NumberSeries, c.ID, c.SeriesSalesInvoice)
		return err
	})
}

// MarkCredited Posted -> Credited, tras emitir la nota de crédito que la anula.
func (s *Service) MarkCredited(ctx context.Context, documentID string) (*entity.SalesDocument, error) {
	return s.convertSales(ctx, documentID, entity.SalesCredited, nil)
}

type numberFn func(ctx context.Context, r repository.Repos, c *entity.Company, d *entity.SalesDocument) error

// convertSales valida la transición antes de consumir números: si la guarda
// falla no queda ningún número asignado.
func (s *Service) convertSales(ctx context.Context, documentID string, to entity.SalesState, assign numberFn) (*entity.SalesDocument, error) {
	var out *entity.SalesDocument
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		doc, err := r.SalesDocuments.GetForUpdate(ctx, documentID)
		if err != nil {
			return fmt.Errorf("lock sales document: %w", err)
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		guard, ok := entity.SalesTransitions(doc.State)[to]
		if !ok {
			return domain.Invalid(domain.ErrInvalidTransition, "%s -> %s", doc.State, to)
		}
		if err := guard(doc); err != nil {
			return err
		}
		if assign != nil {
			company, err := loadCompany(ctx, r, doc.CompanyID)
			if err != nil {
				return err
			}
			if err := assign(ctx, r, company, doc); err != nil {
				return err
			}
		}
		if err := doc.TransitionTo(to); err != nil {
			return err
		}
		doc.UpdatedAt = s.now()
		if err := r.SalesDocuments.Update(ctx, doc); err != nil {
			return fmt.Errorf("update sales document: %w", err)
		}
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePurchaseInput alta de documento de compra. State vacío = pedido.
type CreatePurchaseInput struct {
	CompanyID         string
	CreditorID        string
	DocType           entity.DocType
	State             entity.PurchaseState
	Date              time.Time
	Currency          string
	SupplierInvoiceNo string
}

// CreatePurchase crea un pedido (o directamente una factura) de compra.
func (s *Service) CreatePurchase(ctx context.Context, in CreatePurchaseInput) (*entity.PurchaseDocument, error) {
	if in.CompanyID == "" || in.CreditorID == "" {
		return nil, domain.ErrInvalidInput
	}
	state := in.State
	if state == "" {
		state = entity.PurchaseOrder
	}
	if state != entity.PurchaseOrder && state != entity.PurchaseInvoice {
		return nil, domain.Invalid(domain.ErrInvalidTransition, "no se puede crear un documento en estado %s", state)
	}
	docType := in.DocType
	if docType == "" {
		docType = entity.DocInvoice
	}
	if docType != entity.DocInvoice && docType != entity.DocCreditNote {
		return nil, domain.Invalid(domain.ErrInvalidInput, "tipo de documento %q", docType)
	}

	var out *entity.PurchaseDocument
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		company, err := loadCompany(ctx, r, in.CompanyID)
		if err != nil {
			return err
		}
		creditor, err := r.Creditors.GetByID(ctx, in.CreditorID)
		if err != nil {
			return err
		}
		if creditor == nil || creditor.CompanyID != company.ID {
			return domain.Invalid(domain.ErrNotFound, "proveedor %s", in.CreditorID)
		}
		cur, err := documentCurrency(company, in.Currency)
		if err != nil {
			return err
		}
		now := s.now()
		doc := &entity.PurchaseDocument{
			ID:                uuid.New().String(),
			CompanyID:         company.ID,
			CreditorID:        creditor.ID,
			DocType:           docType,
			State:             state,
			Date:              documentDate(in.Date, now),
			Currency:          cur,
			SupplierInvoiceNo: in.SupplierInvoiceNo,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if doc.OrderNo, err = numbering.AllocateInTx(ctx, r.NumberSeries, company.ID, company.SeriesPurchaseOrder); err != nil {
			return err
		}
		if state == entity.PurchaseInvoice {
			if doc.InvoiceNo, err = numbering.AllocateInTx(ctx, r.NumberSeries, company.ID, company.SeriesPurchaseInvoice); err != nil {
				return err
			}
		}
		if err := r.PurchaseDocuments.Create(ctx, doc); err != nil {
			return fmt.Errorf("create purchase document: %w", err)
		}
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddPurchaseLine agrega una línea a un documento de compra no contabilizado.
func (s *Service) AddPurchaseLine(ctx context.Context, documentID string, in LineInput) (*entity.PurchaseDocument, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var out *entity.PurchaseDocument
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		doc, err := r.PurchaseDocuments.GetForUpdate(ctx, documentID)
		if err != nil {
			return fmt.Errorf("lock purchase document: %w", err)
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.IsPosted() {
			return domain.Invalid(domain.ErrAlreadyPosted, "documento %s", doc.ID)
		}
		item, err := loadItem(ctx, r, doc.CompanyID, in.ItemID)
		if err != nil {
			return err
		}
		line := entity.PurchaseLine{
			ID:          uuid.New().String(),
			DocumentID:  doc.ID,
			LineNo:      doc.NextLineNo(),
			ItemID:      item.ID,
			Description: orDefault(in.Description, item.Name),
			Qty:         money.Qty(in.Qty),
			UnitCost:    priceOrDefault(in.Price, item.PurchaseCost),
			Discount:    in.Discount,
			VatCodeID:   in.VatCodeID,
		}
		if err := r.PurchaseDocuments.AddLine(ctx, &line); err != nil {
			return fmt.Errorf("add purchase line: %w", err)
		}
		doc.Lines = append(doc.Lines, line)
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ConvertPurchaseToInvoice pedido -> factura de compra.
func (s *Service) ConvertPurchaseToInvoice(ctx context.Context, documentID, supplierInvoiceNo string) (*entity.PurchaseDocument, error) {
	var out *entity.PurchaseDocument
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		doc, err := r.PurchaseDocuments.GetForUpdate(ctx, documentID)
		if err != nil {
			return fmt.Errorf("lock purchase document: %w", err)
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.State != entity.PurchaseOrder {
			return domain.Invalid(domain.ErrInvalidTransition, "%s -> %s", doc.State, entity.PurchaseInvoice)
		}
		if len(doc.Lines) == 0 {
			return &domain.ValidationError{Err: domain.ErrNoLines}
		}
		company, err := loadCompany(ctx, r, doc.CompanyID)
		if err != nil {
			return err
		}
		if doc.OrderNo == "" {
			if doc.OrderNo, err = numbering.AllocateInTx(ctx, r.NumberSeries, company.ID, company.SeriesPurchaseOrder); err != nil {
				return err
			}
		}
		if doc.InvoiceNo, err = numbering.AllocateInTx(ctx, r.NumberSeries, company.ID, company.SeriesPurchaseInvoice); err != nil {
			return err
		}
		if supplierInvoiceNo != "" {
			doc.SupplierInvoiceNo = supplierInvoiceNo
		}
		if err := doc.TransitionTo(entity.PurchaseInvoice); err != nil {
			return err
		}
		doc.UpdatedAt = s.now()
		if err := r.PurchaseDocuments.Update(ctx, doc); err != nil {
			return fmt.Errorf("update purchase document: %w", err)
		}
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetSales devuelve un documento de venta con sus líneas.
func (s *Service) GetSales(ctx context.Context, id string) (*entity.SalesDocument, error) {
	var out *entity.SalesDocument
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		doc, err := r.SalesDocuments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		out = doc
		return nil
	})
	return out, err
}

// GetPurchase devuelve un documento de compra con sus líneas.
func (s *Service) GetPurchase(ctx context.Context, id string) (*entity.PurchaseDocument, error) {
	var out *entity.PurchaseDocument
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		doc, err := r.PurchaseDocuments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		out = doc
		return nil
	})
	return out, err
}

// allocateOffer la serie de ofertas es opcional: sin serie la oferta queda sin número.
func allocateOffer(ctx context.Context, r repository.Repos, c *entity.Company) (string, error) {
	if c.SeriesSalesOffer == "" {
		return "", nil
	}
	return numbering.AllocateInTx(ctx, r.NumberSeries, c.ID, c.SeriesSalesOffer)
}

func loadCompany(ctx context.Context, r repository.Repos, id string) (*entity.Company, error) {
	company, err := r.Companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

func loadItem(ctx context.Context, r repository.Repos, companyID, itemID string) (*entity.Item, error) {
	item, err := r.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != companyID {
		return nil, domain.Invalid(domain.ErrNotFound, "artículo %s", itemID)
	}
	return item, nil
}

func documentCurrency(company *entity.Company, code string) (string, error) {
	if code == "" {
		return company.BaseCurrency, nil
	}
	return fx.NormalizeCode(code)
}

func documentDate(d, now time.Time) time.Time {
	if d.IsZero() {
		d = now
	}
	return entity.DateOnly(d)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func priceOrDefault(v, def decimal.Decimal) decimal.Decimal {
	if v.IsZero() {
		return def
	}
	return v
}
