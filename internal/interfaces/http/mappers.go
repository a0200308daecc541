package http

import (
	"time"

	"github.com/jhoicas/erp-posting/internal/application/dto"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func formatStamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toJournalResponse(j *entity.Journal) dto.JournalResponse {
	out := dto.JournalResponse{
		ID:        j.ID,
		CompanyID: j.CompanyID,
		Number:    j.Number,
		Date:      j.Date.Format(dateLayout),
		Reference: j.Reference,
		State:     string(j.State),
		PostedAt:  formatStamp(j.PostedAt),
		PostedBy:  j.PostedBy,
		Lines:     make([]dto.JournalLineResponse, 0, len(j.Lines)),
	}
	for _, l := range j.Lines {
		out.Lines = append(out.Lines, dto.JournalLineResponse{
			ID:          l.ID,
			LineNo:      l.LineNo,
			AccountID:   l.AccountID,
			Description: l.Description,
			Currency:    l.Currency,
			FXRate:      l.FXRate,
			DebitTx:     l.DebitTx,
			CreditTx:    l.CreditTx,
			DebitBase:   l.DebitBase,
			CreditBase:  l.CreditBase,
		})
	}
	return out
}

func toSalesResponse(d *entity.SalesDocument) dto.SalesDocumentResponse {
	out := dto.SalesDocumentResponse{
		ID:                d.ID,
		DebtorID:          d.DebtorID,
		DocType:           string(d.DocType),
		State:             string(d.State),
		Date:              d.Date.Format(dateLayout),
		Currency:          d.Currency,
		OfferNo:           d.OfferNo,
		OrderNo:           d.OrderNo,
		InvoiceNo:         d.InvoiceNo,
		CreditsDocumentID: d.CreditsDocumentID,
		TotalNetTx:        d.TotalNetTx,
		TotalVatTx:        d.TotalVatTx,
		TotalTx:           d.TotalTx,
		TotalBase:         d.TotalBase,
		PostedJournalID:   d.PostedJournalID,
		Lines:             make([]dto.DocumentLineResponse, 0, len(d.Lines)),
	}
	for i := range d.Lines {
		l := &d.Lines[i]
		out.Lines = append(out.Lines, dto.DocumentLineResponse{
			ID:          l.ID,
			LineNo:      l.LineNo,
			ItemID:      l.ItemID,
			Description: l.Description,
			Qty:         l.Qty,
			Price:       l.UnitPrice,
			Discount:    l.Discount,
			VatCodeID:   l.VatCodeID,
			NetTx:       l.NetTx(),
		})
	}
	return out
}

func toPurchaseResponse(d *entity.PurchaseDocument) dto.PurchaseDocumentResponse {
	out := dto.PurchaseDocumentResponse{
		ID:                d.ID,
		CreditorID:        d.CreditorID,
		DocType:           string(d.DocType),
		State:             string(d.State),
		Date:              d.Date.Format(dateLayout),
		Currency:          d.Currency,
		OrderNo:           d.OrderNo,
		InvoiceNo:         d.InvoiceNo,
		SupplierInvoiceNo: d.SupplierInvoiceNo,
		TotalNetTx:        d.TotalNetTx,
		TotalVatTx:        d.TotalVatTx,
		TotalTx:           d.TotalTx,
		TotalBase:         d.TotalBase,
		PostedJournalID:   d.PostedJournalID,
		Lines:             make([]dto.DocumentLineResponse, 0, len(d.Lines)),
	}
	for i := range d.Lines {
		l := &d.Lines[i]
		out.Lines = append(out.Lines, dto.DocumentLineResponse{
			ID:          l.ID,
			LineNo:      l.LineNo,
			ItemID:      l.ItemID,
			Description: l.Description,
			Qty:         l.Qty,
			Price:       l.UnitCost,
			Discount:    l.Discount,
			VatCodeID:   l.VatCodeID,
			NetTx:       l.NetTx(),
		})
	}
	return out
}

func toOpenItemResponse(o *entity.OpenItem) dto.OpenItemResponse {
	return dto.OpenItemResponse{
		ID:                 o.ID,
		Kind:               string(o.Kind),
		DebtorID:           o.DebtorID,
		CreditorID:         o.CreditorID,
		SalesDocumentID:    o.SalesDocumentID,
		PurchaseDocumentID: o.PurchaseDocumentID,
		JournalID:          o.JournalID,
		Currency:           o.Currency,
		OriginalTx:         o.OriginalTx,
		OriginalBase:       o.OriginalBase,
		RemainingTx:        o.RemainingTx,
		RemainingBase:      o.RemainingBase,
		DueDate:            o.DueDate.Format(dateLayout),
	}
}

func toSettlementResponse(s *entity.Settlement) dto.SettlementResponse {
	return dto.SettlementResponse{
		ID:                   s.ID,
		OpenItemID:           s.OpenItemID,
		PaymentJournalLineID: s.PaymentJournalLineID,
		AmountTx:             s.AmountTx,
		AmountBase:           s.AmountBase,
		SettledAt:            formatStamp(s.SettledAt),
		SettledBy:            s.SettledBy,
	}
}

// parseDate fecha opcional YYYY-MM-DD; vacío = cero.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
