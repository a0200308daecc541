package entity

// DebtorGroup grupo de clientes con su cuenta de control AR.
type DebtorGroup struct {
	ID               string
	CompanyID        string
	Name             string
	ARAccountID      string
	PaymentTermsDays int
}

// Debtor cliente (deudor).
type Debtor struct {
	ID        string
	CompanyID string
	Number    string
	Name      string
	GroupID   string
	VatArea   VatArea
}

// Creditor proveedor (acreedor). La cuenta AP sale de la empresa.
type Creditor struct {
	ID        string
	CompanyID string
	Number    string
	Name      string
	VatArea   VatArea
}
