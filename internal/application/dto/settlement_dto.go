package dto

import "github.com/shopspring/decimal"

// CreateSettlementRequest body para POST /api/settlements. Importes en cero
// se derivan del apunte de pago al liquidar.
type CreateSettlementRequest struct {
	OpenItemID           string          `json:"open_item_id" validate:"required"`
	PaymentJournalLineID string          `json:"payment_journal_line_id" validate:"required"`
	AmountTx             decimal.Decimal `json:"amount_tx"`
	AmountBase           decimal.Decimal `json:"amount_base"`
}

// SettlementResponse liquidación.
type SettlementResponse struct {
	ID                   string          `json:"id"`
	OpenItemID           string          `json:"open_item_id"`
	PaymentJournalLineID string          `json:"payment_journal_line_id"`
	AmountTx             decimal.Decimal `json:"amount_tx"`
	AmountBase           decimal.Decimal `json:"amount_base"`
	SettledAt            string          `json:"settled_at,omitempty"`
	SettledBy            string          `json:"settled_by,omitempty"`
}

// OpenItemResponse partida abierta. Importes negativos = nota de crédito.
type OpenItemResponse struct {
	ID                 string          `json:"id"`
	Kind               string          `json:"kind"`
	DebtorID           string          `json:"debtor_id,omitempty"`
	CreditorID         string          `json:"creditor_id,omitempty"`
	SalesDocumentID    string          `json:"sales_document_id,omitempty"`
	PurchaseDocumentID string          `json:"purchase_document_id,omitempty"`
	JournalID          string          `json:"journal_id"`
	Currency           string          `json:"currency"`
	OriginalTx         decimal.Decimal `json:"original_tx"`
	OriginalBase       decimal.Decimal `json:"original_base"`
	RemainingTx        decimal.Decimal `json:"remaining_tx"`
	RemainingBase      decimal.Decimal `json:"remaining_base"`
	DueDate            string          `json:"due_date"`
}

// SettleResponse estado tras aplicar una liquidación.
type SettleResponse struct {
	Settlement    SettlementResponse `json:"settlement"`
	OpenItem      OpenItemResponse   `json:"open_item"`
	DocumentState string             `json:"document_state,omitempty"`
}
