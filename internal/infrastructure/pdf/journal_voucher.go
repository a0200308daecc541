// Package pdf genera el comprobante imprimible de un asiento contabilizado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Entidad + moneda base │  N° asiento + fecha        │
//	│  Referencia / contabilizado por                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Cuenta | Descripción | Mon. | Debe | Haber       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES en moneda base                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/application/ledger"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

var _ ledger.VoucherGenerator = (*MarotoVoucherGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoVoucherGenerator implementa ledger.VoucherGenerator con Maroto v2.
type MarotoVoucherGenerator struct{}

// NewMarotoVoucherGenerator construye el generador.
func NewMarotoVoucherGenerator() *MarotoVoucherGenerator { return &MarotoVoucherGenerator{} }

// GenerateJournalVoucher genera el PDF y devuelve sus bytes.
func (g *MarotoVoucherGenerator) GenerateJournalVoucher(
	_ context.Context,
	company *entity.Company,
	j *entity.Journal,
	lines []ledger.VoucherLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de asiento "+j.Number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(company, j))
	m.AddRows(referenceRow(j))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(j, company.BaseCurrency))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(company *entity.Company, j *entity.Journal) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Moneda base: "+company.BaseCurrency, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE ASIENTO", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(j.Number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6}),
			text.New("Fecha: "+j.Date.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 12, Color: colorGray}),
		),
	)
}

func referenceRow(j *entity.Journal) core.Row {
	posted := "-"
	if j.PostedAt != nil {
		posted = j.PostedAt.Format("02/01/2006 15:04") + " por " + nonEmpty(j.PostedBy, "-")
	}
	return row.New(10).Add(col.New(12).Add(
		text.New("Referencia: "+nonEmpty(j.Reference, "-"), props.Text{Size: 8, Top: 1}),
		text.New("Contabilizado: "+posted, props.Text{Size: 8, Top: 5, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 2}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Cuenta", 3, align.Left),
		h("Descripción", 3, align.Left),
		h("Mon.", 1, align.Center),
		h("Debe", 2, align.Right),
		h("Haber", 2, align.Right),
	)
}

func tableRows(lines []ledger.VoucherLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	cell := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Size: 8, Align: a, Top: 1})
	}
	for _, l := range lines {
		account := l.AccountNumber
		if l.AccountName != "" {
			account += " " + l.AccountName
		}
		out = append(out, row.New(6).Add(
			col.New(1).Add(cell(strconv.Itoa(l.LineNo), align.Center)),
			col.New(3).Add(cell(nonEmpty(account, l.AccountID), align.Left)),
			col.New(3).Add(cell(l.Description, align.Left)),
			col.New(1).Add(cell(l.Currency, align.Center)),
			col.New(2).Add(cell(amount(l.DebitBase), align.Right)),
			col.New(2).Add(cell(amount(l.CreditBase), align.Right)),
		))
	}
	return out
}

func totalsRow(j *entity.Journal, baseCurrency string) core.Row {
	debit, credit := j.Totals()
	bold := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: a, Top: 1, Color: colorPrimary})
	}
	return row.New(8).Add(
		col.New(8).Add(bold("TOTAL "+baseCurrency, align.Right)),
		col.New(2).Add(bold(amount(debit), align.Right)),
		col.New(2).Add(bold(amount(credit), align.Right)),
	)
}

func amount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return formatMoney(d.StringFixed(2))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney separa miles con punto y decimales con coma: "1234.50" -> "1.234,50".
func formatMoney(s string) string {
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i+1:]
			break
		}
	}
	n := len(intPart)
	buf := make([]byte, 0, len(s)+n/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac != "" {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
