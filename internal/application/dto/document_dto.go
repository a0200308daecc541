package dto

import "github.com/shopspring/decimal"

// CreateSalesDocumentRequest body para POST /api/sales-documents.
// State vacío = offer; DocType vacío = invoice.
type CreateSalesDocumentRequest struct {
	DebtorID          string `json:"debtor_id" validate:"required"`
	DocType           string `json:"doc_type,omitempty" validate:"omitempty,oneof=invoice credit_note"`
	State             string `json:"state,omitempty" validate:"omitempty,oneof=offer order invoice"`
	Date              string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Currency          string `json:"currency,omitempty" validate:"omitempty,len=3"`
	CreditsDocumentID string `json:"credits_document_id,omitempty"`
}

// CreatePurchaseDocumentRequest body para POST /api/purchase-documents.
type CreatePurchaseDocumentRequest struct {
	CreditorID        string `json:"creditor_id" validate:"required"`
	DocType           string `json:"doc_type,omitempty" validate:"omitempty,oneof=invoice credit_note"`
	State             string `json:"state,omitempty" validate:"omitempty,oneof=order invoice"`
	Date              string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Currency          string `json:"currency,omitempty" validate:"omitempty,len=3"`
	SupplierInvoiceNo string `json:"supplier_invoice_no,omitempty"`
}

// DocumentLineRequest línea nueva. Price es precio de venta o costo de compra;
// cero = el del artículo.
type DocumentLineRequest struct {
	ItemID      string          `json:"item_id" validate:"required"`
	Description string          `json:"description,omitempty"`
	Qty         decimal.Decimal `json:"qty"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	VatCodeID   string          `json:"vat_code_id,omitempty"`
}

// ConvertPurchaseRequest body para convertir un pedido de compra en factura.
type ConvertPurchaseRequest struct {
	SupplierInvoiceNo string `json:"supplier_invoice_no" validate:"required,max=60"`
}

// DocumentLineResponse línea en respuestas.
type DocumentLineResponse struct {
	ID          string          `json:"id"`
	LineNo      int             `json:"line_no"`
	ItemID      string          `json:"item_id"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	VatCodeID   string          `json:"vat_code_id,omitempty"`
	NetTx       decimal.Decimal `json:"net_tx"`
}

// SalesDocumentResponse documento de venta.
type SalesDocumentResponse struct {
	ID                string                 `json:"id"`
	DebtorID          string                 `json:"debtor_id"`
	DocType           string                 `json:"doc_type"`
	State             string                 `json:"state"`
	Date              string                 `json:"date"`
	Currency          string                 `json:"currency"`
	OfferNo           string                 `json:"offer_no,omitempty"`
	OrderNo           string                 `json:"order_no,omitempty"`
	InvoiceNo         string                 `json:"invoice_no,omitempty"`
	CreditsDocumentID string                 `json:"credits_document_id,omitempty"`
	TotalNetTx        decimal.Decimal        `json:"total_net_tx"`
	TotalVatTx        decimal.Decimal        `json:"total_vat_tx"`
	TotalTx           decimal.Decimal        `json:"total_tx"`
	TotalBase         decimal.Decimal        `json:"total_base"`
	PostedJournalID   string                 `json:"posted_journal_id,omitempty"`
	Lines             []DocumentLineResponse `json:"lines"`
}

// PurchaseDocumentResponse documento de compra.
type PurchaseDocumentResponse struct {
	ID                string                 `json:"id"`
	CreditorID        string                 `json:"creditor_id"`
	DocType           string                 `json:"doc_type"`
	State             string                 `json:"state"`
	Date              string                 `json:"date"`
	Currency          string                 `json:"currency"`
	OrderNo           string                 `json:"order_no,omitempty"`
	InvoiceNo         string                 `json:"invoice_no,omitempty"`
	SupplierInvoiceNo string                 `json:"supplier_invoice_no,omitempty"`
	TotalNetTx        decimal.Decimal        `json:"total_net_tx"`
	TotalVatTx        decimal.Decimal        `json:"total_vat_tx"`
	TotalTx           decimal.Decimal        `json:"total_tx"`
	TotalBase         decimal.Decimal        `json:"total_base"`
	PostedJournalID   string                 `json:"posted_journal_id,omitempty"`
	Lines             []DocumentLineResponse `json:"lines"`
}

// PostSalesResponse resultado de contabilizar una factura de venta.
type PostSalesResponse struct {
	Document SalesDocumentResponse `json:"document"`
	Journal  JournalResponse       `json:"journal"`
	OpenItem OpenItemResponse      `json:"open_item"`
}

// PostPurchaseResponse resultado de contabilizar una factura de compra.
type PostPurchaseResponse struct {
	Document PurchaseDocumentResponse `json:"document"`
	Journal  JournalResponse          `json:"journal"`
	OpenItem OpenItemResponse         `json:"open_item"`
}
