package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-posting/internal/application/ledger"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/infrastructure/memory"
)

type fakeGenerator struct {
	company *entity.Company
	lines   []ledger.VoucherLine
	err     error
}

func (g *fakeGenerator) GenerateJournalVoucher(_ context.Context, company *entity.Company, _ *entity.Journal, lines []ledger.VoucherLine) ([]byte, error) {
	g.company, g.lines = company, lines
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func postedJournal(t *testing.T, svc *ledger.JournalService) *entity.Journal {
	t.Helper()
	ctx := context.Background()
	draft, err := svc.CreateDraft(ctx, ledger.CreateJournalInput{
		CompanyID: memory.DemoCompanyID, Date: day, Reference: "Cobro", Lines: bankToSales("10"),
	})
	require.NoError(t, err)
	j, err := svc.Post(ctx, draft.ID, "u1")
	require.NoError(t, err)
	return j
}

func TestVoucherDownload_AsientoContabilizado(t *testing.T) {
	s, svc := newService(t)
	j := postedJournal(t, svc)
	gen := &fakeGenerator{}
	uc := ledger.NewVoucherUseCase(s, gen)

	pdf, name, err := uc.Download(context.Background(), memory.DemoCompanyID, j.ID)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "asiento-J-00001.pdf", name)
	require.NotNil(t, gen.company)
	assert.Equal(t, "Demo ApS", gen.company.Name)
	require.Len(t, gen.lines, 2)
	assert.Equal(t, "5800", gen.lines[0].AccountNumber)
	assert.Equal(t, "Ventas", gen.lines[1].AccountName)
}

func TestVoucherDownload_Borrador(t *testing.T) {
	s, svc := newService(t)
	draft, err := svc.CreateDraft(context.Background(), ledger.CreateJournalInput{
		CompanyID: memory.DemoCompanyID, Date: day, Lines: bankToSales("10"),
	})
	require.NoError(t, err)

	_, _, err = ledger.NewVoucherUseCase(s, &fakeGenerator{}).Download(context.Background(), memory.DemoCompanyID, draft.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVoucherDownload_OtraEntidad(t *testing.T) {
	s, svc := newService(t)
	j := postedJournal(t, svc)

	_, _, err := ledger.NewVoucherUseCase(s, &fakeGenerator{}).Download(context.Background(), "otra", j.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVoucherDownload_ErrorDelGenerador(t *testing.T) {
	s, svc := newService(t)
	j := postedJournal(t, svc)
	boom := errors.New("boom")

	_, _, err := ledger.NewVoucherUseCase(s, &fakeGenerator{err: boom}).Download(context.Background(), memory.DemoCompanyID, j.ID)
	assert.ErrorIs(t, err, boom)
}
