// Package settlement aplica pagos contra partidas abiertas y sincroniza el
// estado de cobro de los documentos de venta.
package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/application/ports"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/money"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

// Service liquidaciones y sincronización de estado de pago.
type Service struct {
	txRunner ports.TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewService construye el servicio.
func NewService(txRunner ports.TxRunner, log zerolog.Logger) *Service {
	return &Service{txRunner: txRunner, log: log, now: time.Now}
}

// CreateInput liquidación pendiente. Importes en cero = se derivan del apunte de pago.
type CreateInput struct {
	CompanyID            string
	OpenItemID           string
	PaymentJournalLineID string
	AmountTx             decimal.Decimal
	AmountBase           decimal.Decimal
}

// Create registra una liquidación sin aplicar.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Settlement, error) {
	if in.CompanyID == "" || in.OpenItemID == "" || in.PaymentJournalLineID == "" {
		return nil, domain.ErrInvalidInput
	}
	st := &entity.Settlement{
		ID:                   uuid.New().String(),
		CompanyID:            in.CompanyID,
		OpenItemID:           in.OpenItemID,
		PaymentJournalLineID: in.PaymentJournalLineID,
		AmountTx:             money.Amount(in.AmountTx),
		AmountBase:           money.Amount(in.AmountBase),
		CreatedAt:            s.now(),
	}
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		oi, err := r.OpenItems.GetForUpdate(ctx, in.OpenItemID)
		if err != nil {
			return fmt.Errorf("get open item: %w", err)
		}
		if oi == nil || oi.CompanyID != in.CompanyID {
			return domain.Invalid(domain.ErrNotFound, "partida abierta %s", in.OpenItemID)
		}
		line, _, err := r.Journals.GetLine(ctx, in.PaymentJournalLineID)
		if err != nil {
			return fmt.Errorf("get payment line: %w", err)
		}
		if line == nil {
			return domain.Invalid(domain.ErrNotFound, "apunte de pago %s", in.PaymentJournalLineID)
		}
		return r.Settlements.Create(ctx, st)
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Get devuelve una liquidación.
func (s *Service) Get(ctx context.Context, id string) (*entity.Settlement, error) {
	var out *entity.Settlement
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		st, err := r.Settlements.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if st == nil {
			return domain.ErrNotFound
		}
		out = st
		return nil
	})
	return out, err
}

// OpenItemsForDebtor partidas AR con saldo pendiente del deudor, por vencimiento.
func (s *Service) OpenItemsForDebtor(ctx context.Context, companyID, debtorID string) ([]*entity.OpenItem, error) {
	var out []*entity.OpenItem
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		d, err := r.Debtors.GetByID(ctx, debtorID)
		if err != nil {
			return err
		}
		if d == nil || d.CompanyID != companyID {
			return domain.ErrNotFound
		}
		items, err := r.OpenItems.ListOpenByDebtor(ctx, companyID, debtorID)
		if err != nil {
			return fmt.Errorf("list open items: %w", err)
		}
		out = items
		return nil
	})
	return out, err
}

// Result estado tras aplicar una liquidación.
type Result struct {
	Settlement *entity.Settlement
	OpenItem   *entity.OpenItem
	Document   *entity.SalesDocument // nil si la partida no es de un documento de venta
}

// Settle aplica la liquidación en su propia transacción.
func (s *Service) Settle(ctx context.Context, settlementID, byUser string) (*Result, error) {
	var res *Result
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		st, oi, err := s.SettleInTx(ctx, r, settlementID, byUser)
		if err != nil {
			return err
		}
		res = &Result{Settlement: st, OpenItem: oi}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SettleAndSync aplica la liquidación y sincroniza el documento de venta en
// la misma transacción, de modo que partida y documento nunca divergen.
func (s *Service) SettleAndSync(ctx context.Context, settlementID, byUser string) (*Result, error) {
	var res *Result
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		st, oi, err := s.SettleInTx(ctx, r, settlementID, byUser)
		if err != nil {
			return err
		}
		res = &Result{Settlement: st, OpenItem: oi}
		if oi.Kind == entity.OpenItemAR && oi.SalesDocumentID != "" {
			doc, err := s.SyncSalesDocPaymentStateInTx(ctx, r, oi.SalesDocumentID, byUser)
			if err != nil {
				return err
			}
			res.Document = doc
		}
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Str("settlement_id", settlementID).Msg("liquidación rechazada")
		return nil, err
	}
	s.log.Info().
		Str("settlement_id", settlementID).
		Str("open_item_id", res.OpenItem.ID).
		Str("remaining_base", res.OpenItem.RemainingBase.StringFixed(2)).
		Msg("liquidación aplicada")
	return res, nil
}

// SettleInTx bloquea liquidación y partida, valida entidad y moneda, deriva
// los importes del apunte de pago si no se indicaron y descuenta el saldo.
// Una liquidación ya aplicada se rechaza.
func (s *Service) SettleInTx(ctx context.Context, r repository.Repos, settlementID, byUser string) (*entity.Settlement, *entity.OpenItem, error) {
	st, err := r.Settlements.GetForUpdate(ctx, settlementID)
	if err != nil {
		return nil, nil, fmt.Errorf("lock settlement: %w", err)
	}
	if st == nil {
		return nil, nil, domain.ErrNotFound
	}
	if st.IsApplied() {
		return nil, nil, domain.Invalid(domain.ErrAlreadySettled, "liquidación %s", st.ID)
	}

	oi, err := r.OpenItems.GetForUpdate(ctx, st.OpenItemID)
	if err != nil {
		return nil, nil, fmt.Errorf("lock open item: %w", err)
	}
	if oi == nil {
		return nil, nil, domain.Invalid(domain.ErrNotFound, "partida abierta %s", st.OpenItemID)
	}
	line, journal, err := r.Journals.GetLine(ctx, st.PaymentJournalLineID)
	if err != nil {
		return nil, nil, fmt.Errorf("get payment line: %w", err)
	}
	if line == nil || journal == nil {
		return nil, nil, domain.Invalid(domain.ErrNotFound, "apunte de pago %s", st.PaymentJournalLineID)
	}

	if oi.CompanyID != st.CompanyID {
		return nil, nil, domain.Invalid(domain.ErrCompanyMismatch, "la partida pertenece a otra entidad")
	}
	if journal.CompanyID != st.CompanyID {
		return nil, nil, domain.Invalid(domain.ErrCompanyMismatch, "el apunte de pago pertenece a otra entidad")
	}
	if line.Currency != "" && oi.Currency != "" && line.Currency != oi.Currency {
		return nil, nil, domain.Invalid(domain.ErrCurrencyMismatch, "pago en %s, partida en %s", line.Currency, oi.Currency)
	}

	amountTx, amountBase := st.AmountTx, st.AmountBase
	if amountTx.IsZero() && amountBase.IsZero() {
		amountTx, amountBase = PaymentEffect(oi.Kind, line)
	}
	if err := oi.Apply(amountTx, amountBase); err != nil {
		return nil, nil, err
	}
	if err := r.OpenItems.UpdateRemaining(ctx, oi); err != nil {
		return nil, nil, fmt.Errorf("update open item: %w", err)
	}

	now := s.now()
	st.AmountTx = amountTx
	st.AmountBase = amountBase
	st.SettledAt = &now
	st.SettledBy = byUser
	if err := r.Settlements.MarkSettled(ctx, st); err != nil {
		return nil, nil, fmt.Errorf("mark settlement: %w", err)
	}
	return st, oi, nil
}

// PaymentEffect importe que un apunte de pago descuenta de una partida:
// en AR reduce el haber (crédito - débito), en AP el debe (débito - crédito).
func PaymentEffect(kind entity.OpenItemKind, line *entity.JournalLine) (tx, base decimal.Decimal) {
	tx, base = line.Effect()
	if kind == entity.OpenItemAR {
		return tx.Neg(), base.Neg()
	}
	return tx, base
}

// SyncSalesDocPaymentState sincroniza el estado de cobro en su propia transacción.
func (s *Service) SyncSalesDocPaymentState(ctx context.Context, documentID, byUser string) (*entity.SalesDocument, error) {
	var out *entity.SalesDocument
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		doc, err := s.SyncSalesDocPaymentStateInTx(ctx, r, documentID, byUser)
		if err != nil {
			return err
		}
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SyncSalesDocPaymentStateInTx lee la partida AR más reciente del documento
// (bloqueada) y ajusta su estado: saldo cero -> Paid; saldo menor al original
// desde Posted -> PartlyPaid; saldo igual al original desde PartlyPaid ->
// Posted. Sin partida AR no hace nada.
func (s *Service) SyncSalesDocPaymentStateInTx(ctx context.Context, r repository.Repos, documentID, byUser string) (*entity.SalesDocument, error) {
	doc, err := r.SalesDocuments.GetForUpdate(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("lock sales document: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	oi, err := r.OpenItems.LatestARForSalesDocumentForUpdate(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("lock open item: %w", err)
	}
	if oi == nil {
		return doc, nil
	}

	remaining := money.Amount(oi.RemainingTx).Abs()
	original := money.Amount(oi.OriginalTx).Abs()
	target := doc.State
	switch {
	case remaining.IsZero():
		if doc.State == entity.SalesPosted || doc.State == entity.SalesPartlyPaid {
			target = entity.SalesPaid
		}
	case remaining.LessThan(original):
		if doc.State == entity.SalesPosted {
			target = entity.SalesPartlyPaid
		}
	default:
		if doc.State == entity.SalesPartlyPaid {
			target = entity.SalesPosted
		}
	}
	if target == doc.State {
		return doc, nil
	}
	if err := doc.TransitionTo(target); err != nil {
		return nil, err
	}
	now := s.now()
	if target == entity.SalesPaid {
		doc.PaidAt = &now
		doc.PaidBy = byUser
	}
	doc.UpdatedAt = now
	if err := r.SalesDocuments.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("update sales document: %w", err)
	}
	return doc, nil
}
