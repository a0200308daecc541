package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-posting/internal/application/ports"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

// VoucherLine apunte con el número y nombre de su cuenta.
type VoucherLine struct {
	entity.JournalLine
	AccountNumber string
	AccountName   string
}

// VoucherGenerator genera el comprobante (PDF) de un asiento.
type VoucherGenerator interface {
	GenerateJournalVoucher(ctx context.Context, company *entity.Company, j *entity.Journal, lines []VoucherLine) ([]byte, error)
}

// VoucherUseCase descarga del comprobante de un asiento contabilizado.
type VoucherUseCase struct {
	txRunner  ports.TxRunner
	generator VoucherGenerator
}

// NewVoucherUseCase construye el caso de uso.
func NewVoucherUseCase(txRunner ports.TxRunner, generator VoucherGenerator) *VoucherUseCase {
	return &VoucherUseCase{txRunner: txRunner, generator: generator}
}

// Download devuelve el PDF y el nombre de archivo.
//
// Retorna:
//   - domain.ErrNotFound     si el asiento no existe.
//   - domain.ErrForbidden    si el asiento es de otra entidad.
//   - domain.ErrInvalidInput si el asiento sigue en borrador (sin número).
func (uc *VoucherUseCase) Download(ctx context.Context, companyID, journalID string) ([]byte, string, error) {
	var (
		company *entity.Company
		journal *entity.Journal
		lines   []VoucherLine
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		j, err := r.Journals.GetByID(ctx, journalID)
		if err != nil {
			return fmt.Errorf("voucher: obtener asiento: %w", err)
		}
		if j == nil {
			return domain.ErrNotFound
		}
		if j.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !j.IsPosted() {
			return fmt.Errorf("%w: el asiento está en borrador", domain.ErrInvalidInput)
		}
		c, err := r.Companies.GetByID(ctx, companyID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		ids := make([]string, 0, len(j.Lines))
		for _, l := range j.Lines {
			ids = append(ids, l.AccountID)
		}
		accounts, err := r.Accounts.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("voucher: cargar cuentas: %w", err)
		}
		for _, l := range j.Lines {
			vl := VoucherLine{JournalLine: l}
			if a := accounts[l.AccountID]; a != nil {
				vl.AccountNumber, vl.AccountName = a.Number, a.Name
			}
			lines = append(lines, vl)
		}
		company, journal = c, j
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateJournalVoucher(ctx, company, journal, lines)
	if err != nil {
		return nil, "", fmt.Errorf("voucher: generar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("asiento-%s.pdf", journal.Number), nil
}
