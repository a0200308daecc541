package dto

import "github.com/shopspring/decimal"

// AllocateResponse número asignado por una serie.
type AllocateResponse struct {
	Series string `json:"series"`
	Number string `json:"number"`
}

// FXRateResponse tasa resuelta: 1 base = rate * quote.
type FXRateResponse struct {
	Date  string          `json:"date"`
	Base  string          `json:"base"`
	Quote string          `json:"quote"`
	Rate  decimal.Decimal `json:"rate"`
}

// CreateJournalRequest body para POST /api/journals.
type CreateJournalRequest struct {
	Date      string               `json:"date" validate:"required,datetime=2006-01-02"`
	Reference string               `json:"reference" validate:"max=200"`
	Lines     []JournalLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// JournalLineRequest apunte. Currency vacío = moneda base.
type JournalLineRequest struct {
	AccountID   string          `json:"account_id" validate:"required"`
	Description string          `json:"description,omitempty"`
	Currency    string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	FXRate      decimal.Decimal `json:"fx_rate"`
	DebitTx     decimal.Decimal `json:"debit_tx"`
	CreditTx    decimal.Decimal `json:"credit_tx"`
	DebitBase   decimal.Decimal `json:"debit_base"`
	CreditBase  decimal.Decimal `json:"credit_base"`
}

// JournalResponse asiento con sus apuntes.
type JournalResponse struct {
	ID        string                `json:"id"`
	CompanyID string                `json:"company_id"`
	Number    string                `json:"number,omitempty"`
	Date      string                `json:"date"`
	Reference string                `json:"reference,omitempty"`
	State     string                `json:"state"`
	PostedAt  string                `json:"posted_at,omitempty"`
	PostedBy  string                `json:"posted_by,omitempty"`
	Lines     []JournalLineResponse `json:"lines"`
}

// JournalLineResponse apunte en respuestas.
type JournalLineResponse struct {
	ID          string          `json:"id"`
	LineNo      int             `json:"line_no"`
	AccountID   string          `json:"account_id"`
	Description string          `json:"description,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	FXRate      decimal.Decimal `json:"fx_rate"`
	DebitTx     decimal.Decimal `json:"debit_tx"`
	CreditTx    decimal.Decimal `json:"credit_tx"`
	DebitBase   decimal.Decimal `json:"debit_base"`
	CreditBase  decimal.Decimal `json:"credit_base"`
}
