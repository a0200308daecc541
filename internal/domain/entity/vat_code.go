package entity

import "github.com/shopspring/decimal"

// VatArea clasificación fiscal de la contraparte.
type VatArea string

const (
	VatAreaDK        VatArea = "DK"
	VatAreaEUB2B     VatArea = "EU_B2B"
	VatAreaExport    VatArea = "EXPORT"
	VatAreaDKSpecial VatArea = "DK_SPECIAL"
)

// VatType uso del código: ventas o compras.
type VatType string

const (
	VatTypeSale     VatType = "SALE"
	VatTypePurchase VatType = "PURCHASE"
)

// VatCode código de IVA con su tasa (fracción decimal) y cuentas.
// DeductionRate y DeductionMethod se almacenan pero la contabilización
// todavía no aplica deducción parcial.
type VatCode struct {
	ID                 string
	CompanyID          string
	Code               string
	Name               string
	VatType            VatType
	Rate               decimal.Decimal
	DeductionRate      decimal.Decimal
	DeductionMethod    string
	OutputVatAccountID string
	InputVatAccountID  string

	DKOnly             bool
	DKMixed            bool
	International      bool
	InternationalMixed bool
	SpecialScheme      bool
}

// AllowedFor indica si el código puede usarse con una contraparte del área dada.
// Un área desconocida o vacía nunca está permitida.
func (v *VatCode) AllowedFor(area VatArea) bool {
	switch area {
	case VatAreaDK:
		return v.DKOnly || v.DKMixed
	case VatAreaEUB2B, VatAreaExport:
		return v.International || v.InternationalMixed
	case VatAreaDKSpecial:
		return v.SpecialScheme
	default:
		return false
	}
}
