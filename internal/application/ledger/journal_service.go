// Package ledger crea y contabiliza asientos.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/application/fx"
	"github.com/jhoicas/erp-posting/internal/application/numbering"
	"github.com/jhoicas/erp-posting/internal/application/ports"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	domainledger "github.com/jhoicas/erp-posting/internal/domain/ledger"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

// RateResolver puerto del resolvedor de tasas.
type RateResolver interface {
	GetRate(ctx context.Context, companyID string, date time.Time, base, quote string) (decimal.Decimal, error)
}

// JournalService casos de uso de asientos.
type JournalService struct {
	txRunner ports.TxRunner
	rates    RateResolver
	log      zerolog.Logger
}

// NewJournalService construye el servicio.
func NewJournalService(txRunner ports.TxRunner, rates RateResolver, log zerolog.Logger) *JournalService {
	return &JournalService{txRunner: txRunner, rates: rates, log: log}
}

// LineInput apunte de un asiento manual. Si Currency es vacío o la moneda
// base, los importes tx y base se completan entre sí; en otra moneda el
// importe base se calcula con FXRate o con la tasa del día.
type LineInput struct {
	AccountID   string
	Description string
	Currency    string
	FXRate      decimal.Decimal
	DebitTx     decimal.Decimal
	CreditTx    decimal.Decimal
	DebitBase   decimal.Decimal
	CreditBase  decimal.Decimal
}

// CreateJournalInput entrada para un asiento en borrador.
type CreateJournalInput struct {
	CompanyID string
	Date      time.Time
	Reference string
	Lines     []LineInput
}

// CreateDraft persiste un asiento en borrador (p. ej. pagos bancarios que luego se liquidan).
func (s *JournalService) CreateDraft(ctx context.Context, in CreateJournalInput) (*entity.Journal, error) {
	if in.CompanyID == "" || in.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Journal
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		company, err := r.Companies.GetByID(ctx, in.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}
		j := entity.NewDraftJournal(uuid.New().String(), company.ID, in.Date, in.Reference, time.Now())
		for _, li := range in.Lines {
			line, err := s.buildLine(ctx, company, j.Date, li)
			if err != nil {
				return err
			}
			if err := j.AddLine(line); err != nil {
				return err
			}
		}
		if err := r.Journals.Create(ctx, j); err != nil {
			return err
		}
		out = j
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *JournalService) buildLine(ctx context.Context, company *entity.Company, date time.Time, li LineInput) (entity.JournalLine, error) {
	line := entity.JournalLine{
		ID:          uuid.New().String(),
		AccountID:   li.AccountID,
		Description: li.Description,
		DebitTx:     li.DebitTx,
		CreditTx:    li.CreditTx,
		DebitBase:   li.DebitBase,
		CreditBase:  li.CreditBase,
	}
	cur := company.BaseCurrency
	if li.Currency != "" {
		c, err := fx.NormalizeCode(li.Currency)
		if err != nil {
			return line, err
		}
		cur = c
	}
	line.Currency = cur

	if cur == company.BaseCurrency {
		line.FXRate = decimal.NewFromInt(1)
		line.DebitTx, line.DebitBase = fillPair(line.DebitTx, line.DebitBase)
		line.CreditTx, line.CreditBase = fillPair(line.CreditTx, line.CreditBase)
		return line, nil
	}

	rate := li.FXRate
	if !rate.IsPositive() {
		if s.rates == nil {
			return line, domain.Invalid(domain.ErrRateNotFound, "%s->%s", company.BaseCurrency, cur)
		}
		r, err := s.rates.GetRate(ctx, company.ID, date, company.BaseCurrency, cur)
		if err != nil {
			return line, err
		}
		rate = r
	}
	line.FXRate = rate
	if line.DebitBase.IsZero() && !line.DebitTx.IsZero() {
		line.DebitBase = fx.ToBase(line.DebitTx, rate)
	}
	if line.CreditBase.IsZero() && !line.CreditTx.IsZero() {
		line.CreditBase = fx.ToBase(line.CreditTx, rate)
	}
	return line, nil
}

func fillPair(tx, base decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	switch {
	case tx.IsZero():
		return base, base
	case base.IsZero():
		return tx, tx
	}
	return tx, base
}

// Get devuelve el asiento con sus líneas.
func (s *JournalService) Get(ctx context.Context, id string) (*entity.Journal, error) {
	var out *entity.Journal
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		j, err := r.Journals.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if j == nil {
			return domain.ErrNotFound
		}
		out = j
		return nil
	})
	return out, err
}

// Post contabiliza un asiento en su propia transacción.
func (s *JournalService) Post(ctx context.Context, journalID, byUser string) (*entity.Journal, error) {
	var out *entity.Journal
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		j, err := PostInTx(ctx, r, journalID, byUser, time.Now())
		if err != nil {
			return err
		}
		out = j
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("journal_id", out.ID).Str("journal_no", out.Number).Msg("asiento contabilizado")
	return out, nil
}

// PostInTx bloquea el asiento y sus líneas, y si está en borrador lo valida
// completo, le asigna número de la serie de diarios y lo marca contabilizado.
// Contabilizar un asiento ya contabilizado no hace nada.
func PostInTx(ctx context.Context, r repository.Repos, journalID, byUser string, now time.Time) (*entity.Journal, error) {
	j, err := r.Journals.GetForUpdate(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("lock journal: %w", err)
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}
	if j.IsPosted() {
		return j, nil
	}

	period, err := r.Periods.FindCovering(ctx, j.CompanyID, j.Date)
	if err != nil {
		return nil, fmt.Errorf("find fiscal period: %w", err)
	}
	ids := make([]string, 0, len(j.Lines))
	for _, l := range j.Lines {
		ids = append(ids, l.AccountID)
	}
	accounts, err := r.Accounts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	if ve := domainledger.ValidateForPosting(j, period, accounts); ve != nil {
		return nil, ve
	}

	company, err := r.Companies.GetByID(ctx, j.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if company.SeriesJournal == "" {
		return nil, domain.MissingConfig("la entidad %s no tiene serie de diarios", company.Name)
	}
	number, err := numbering.AllocateInTx(ctx, r.NumberSeries, company.ID, company.SeriesJournal)
	if err != nil {
		return nil, err
	}
	j.MarkPosted(number, byUser, now)
	if err := r.Journals.MarkPosted(ctx, j); err != nil {
		return nil, fmt.Errorf("mark journal posted: %w", err)
	}
	return j, nil
}
