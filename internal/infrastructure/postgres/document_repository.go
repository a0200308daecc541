package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

var (
	_ repository.SalesDocumentRepository    = (*SalesDocumentRepo)(nil)
	_ repository.PurchaseDocumentRepository = (*PurchaseDocumentRepo)(nil)
)

// SalesDocumentRepo documentos de venta y sus líneas.
type SalesDocumentRepo struct {
	q Querier
}

// NewSalesDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesDocumentRepository(q Querier) *SalesDocumentRepo {
	return &SalesDocumentRepo{q: q}
}

// Create inserta la cabecera y las líneas que traiga.
func (r *SalesDocumentRepo) Create(ctx context.Context, d *entity.SalesDocument) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_documents (id, company_id, debtor_id, doc_type, state, date, currency,
		                             offer_no, order_no, invoice_no, credits_document_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		d.ID, d.CompanyID, d.DebtorID, d.DocType, d.State, d.Date, d.Currency,
		d.OfferNo, d.OrderNo, d.InvoiceNo, nullable(d.CreditsDocumentID), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sales document: %w", err)
	}
	for i := range d.Lines {
		if err := r.AddLine(ctx, &d.Lines[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene el documento con sus líneas.
func (r *SalesDocumentRepo) GetByID(ctx context.Context, id string) (*entity.SalesDocument, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la fila del documento y carga sus líneas.
func (r *SalesDocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesDocument, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *SalesDocumentRepo) get(ctx context.Context, id, lock string) (*entity.SalesDocument, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, company_id, debtor_id, doc_type, state, date, currency,
		       offer_no, order_no, invoice_no, credits_document_id,
		       total_net_tx, total_vat_tx, total_tx, total_base,
		       posted_journal_id, posted_at, posted_by, paid_at, paid_by, created_at, updated_at
		FROM sales_documents WHERE id = $1` + lock
	var d entity.SalesDocument
	var credits, journal, postedBy, paidBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.CompanyID, &d.DebtorID, &d.DocType, &d.State, &d.Date, &d.Currency,
		&d.OfferNo, &d.OrderNo, &d.InvoiceNo, &credits,
		&d.TotalNetTx, &d.TotalVatTx, &d.TotalTx, &d.TotalBase,
		&journal, &d.PostedAt, &postedBy, &d.PaidAt, &paidBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales document: %w", err)
	}
	d.CreditsDocumentID = deref(credits)
	d.PostedJournalID = deref(journal)
	d.PostedBy = deref(postedBy)
	d.PaidBy = deref(paidBy)

	rows, err := r.q.Query(ctx, `
		SELECT id, document_id, line_no, item_id, description, qty, unit_price, discount, vat_code_id
		FROM sales_lines WHERE document_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list sales lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SalesLine
		var item, vat *string
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.LineNo, &item, &l.Description, &l.Qty, &l.UnitPrice, &l.Discount, &vat); err != nil {
			return nil, fmt.Errorf("scan sales line: %w", err)
		}
		l.ItemID = deref(item)
		l.VatCodeID = deref(vat)
		d.Lines = append(d.Lines, l)
	}
	return &d, rows.Err()
}

// Update persiste estado, números, totales y sellos.
func (r *SalesDocumentRepo) Update(ctx context.Context, d *entity.SalesDocument) error {
	_, err := r.q.Exec(ctx, `
		UPDATE sales_documents SET
			state = $1, offer_no = $2, order_no = $3, invoice_no = $4,
			total_net_tx = $5, total_vat_tx = $6, total_tx = $7, total_base = $8,
			posted_journal_id = $9, posted_at = $10, posted_by = $11, paid_at = $12, paid_by = $13,
			updated_at = $14
		WHERE id = $15`,
		d.State, d.OfferNo, d.OrderNo, d.InvoiceNo,
		d.TotalNetTx, d.TotalVatTx, d.TotalTx, d.TotalBase,
		nullable(d.PostedJournalID), d.PostedAt, nullable(d.PostedBy), d.PaidAt, nullable(d.PaidBy),
		d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update sales document: %w", err)
	}
	return nil
}

// AddLine inserta una línea.
func (r *SalesDocumentRepo) AddLine(ctx context.Context, l *entity.SalesLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_lines (id, document_id, line_no, item_id, description, qty, unit_price, discount, vat_code_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.DocumentID, l.LineNo, nullable(l.ItemID), l.Description, l.Qty, l.UnitPrice, l.Discount, nullable(l.VatCodeID),
	)
	if err != nil {
		return fmt.Errorf("insert sales line: %w", err)
	}
	return nil
}

// PurchaseDocumentRepo documentos de compra y sus líneas.
type PurchaseDocumentRepo struct {
	q Querier
}

// NewPurchaseDocumentRepository construye el adaptador.
func NewPurchaseDocumentRepository(q Querier) *PurchaseDocumentRepo {
	return &PurchaseDocumentRepo{q: q}
}

// Create inserta la cabecera y las líneas que traiga.
func (r *PurchaseDocumentRepo) Create(ctx context.Context, d *entity.PurchaseDocument) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_documents (id, company_id, creditor_id, doc_type, state, date, currency,
		                                order_no, invoice_no, supplier_invoice_no, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		d.ID, d.CompanyID, d.CreditorID, d.DocType, d.State, d.Date, d.Currency,
		d.OrderNo, d.InvoiceNo, d.SupplierInvoiceNo, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase document: %w", err)
	}
	for i := range d.Lines {
		if err := r.AddLine(ctx, &d.Lines[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene el documento con sus líneas.
func (r *PurchaseDocumentRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseDocument, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la fila del documento y carga sus líneas.
func (r *PurchaseDocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseDocument, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *PurchaseDocumentRepo) get(ctx context.Context, id, lock string) (*entity.PurchaseDocument, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, company_id, creditor_id, doc_type, state, date, currency,
		       order_no, invoice_no, supplier_invoice_no,
		       total_net_tx, total_vat_tx, total_tx, total_base,
		       posted_journal_id, posted_at, posted_by, created_at, updated_at
		FROM purchase_documents WHERE id = $1` + lock
	var d entity.PurchaseDocument
	var journal, postedBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.CompanyID, &d.CreditorID, &d.DocType, &d.State, &d.Date, &d.Currency,
		&d.OrderNo, &d.InvoiceNo, &d.SupplierInvoiceNo,
		&d.TotalNetTx, &d.TotalVatTx, &d.TotalTx, &d.TotalBase,
		&journal, &d.PostedAt, &postedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase document: %w", err)
	}
	d.PostedJournalID = deref(journal)
	d.PostedBy = deref(postedBy)

	rows, err := r.q.Query(ctx, `
		SELECT id, document_id, line_no, item_id, description, qty, unit_cost, discount, vat_code_id
		FROM purchase_lines WHERE document_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseLine
		var item, vat *string
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.LineNo, &item, &l.Description, &l.Qty, &l.UnitCost, &l.Discount, &vat); err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		l.ItemID = deref(item)
		l.VatCodeID = deref(vat)
		d.Lines = append(d.Lines, l)
	}
	return &d, rows.Err()
}

// Update persiste estado, números, totales y sellos.
func (r *PurchaseDocumentRepo) Update(ctx context.Context, d *entity.PurchaseDocument) error {
	_, err := r.q.Exec(ctx, `
		UPDATE purchase_documents SET
			state = $1, order_no = $2, invoice_no = $3, supplier_invoice_no = $4,
			total_net_tx = $5, total_vat_tx = $6, total_tx = $7, total_base = $8,
			posted_journal_id = $9, posted_at = $10, posted_by = $11, updated_at = $12
		WHERE id = $13`,
		d.State, d.OrderNo, d.InvoiceNo, d.SupplierInvoiceNo,
		d.TotalNetTx, d.TotalVatTx, d.TotalTx, d.TotalBase,
		nullable(d.PostedJournalID), d.PostedAt, nullable(d.PostedBy), d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update purchase document: %w", err)
	}
	return nil
}

// AddLine inserta una línea.
func (r *PurchaseDocumentRepo) AddLine(ctx context.Context, l *entity.PurchaseLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_lines (id, document_id, line_no, item_id, description, qty, unit_cost, discount, vat_code_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.DocumentID, l.LineNo, nullable(l.ItemID), l.Description, l.Qty, l.UnitCost, l.Discount, nullable(l.VatCodeID),
	)
	if err != nil {
		return fmt.Errorf("insert purchase line: %w", err)
	}
	return nil
}
