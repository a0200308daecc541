package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

// Identificadores fijos de los datos de demostración.
const (
	DemoCompanyID = "6f1c2a34-0000-4000-8000-000000000001"

	DemoAccountBank      = "6f1c2a34-0000-4000-8000-000000000101"
	DemoAccountAR        = "6f1c2a34-0000-4000-8000-000000000102"
	DemoAccountInventory = "6f1c2a34-0000-4000-8000-000000000103"
	DemoAccountInputVat  = "6f1c2a34-0000-4000-8000-000000000104"
	DemoAccountAP        = "6f1c2a34-0000-4000-8000-000000000105"
	DemoAccountOutputVat = "6f1c2a34-0000-4000-8000-000000000106"
	DemoAccountSales     = "6f1c2a34-0000-4000-8000-000000000107"
	DemoAccountCOGS      = "6f1c2a34-0000-4000-8000-000000000108"
	DemoAccountExpense   = "6f1c2a34-0000-4000-8000-000000000109"
	DemoAccountTotals    = "6f1c2a34-0000-4000-8000-000000000110"

	DemoVatSales25    = "6f1c2a34-0000-4000-8000-000000000201"
	DemoVatPurchase25 = "6f1c2a34-0000-4000-8000-000000000202"
	DemoVatExport     = "6f1c2a34-0000-4000-8000-000000000203"

	DemoItemGroup   = "6f1c2a34-0000-4000-8000-000000000301"
	DemoStockItem   = "6f1c2a34-0000-4000-8000-000000000302"
	DemoServiceItem = "6f1c2a34-0000-4000-8000-000000000303"

	DemoDebtorGroup    = "6f1c2a34-0000-4000-8000-000000000401"
	DemoDebtor         = "6f1c2a34-0000-4000-8000-000000000402"
	DemoExportDebtor   = "6f1c2a34-0000-4000-8000-000000000403"
	DemoCreditor       = "6f1c2a34-0000-4000-8000-000000000501"
	DemoFiscalPeriodID = "6f1c2a34-0000-4000-8000-000000000601"
)

// Códigos de serie de la entidad de demostración.
const (
	DemoSeriesJournal         = "JOURNAL"
	DemoSeriesSalesOffer      = "SALES_OFFER"
	DemoSeriesSalesOrder      = "SALES_ORDER"
	DemoSeriesSalesInvoice    = "SALES_INVOICE"
	DemoSeriesPurchaseOrder   = "PURCHASE_ORDER"
	DemoSeriesPurchaseInvoice = "PURCHASE_INVOICE"
)

// SeedDemo carga una entidad danesa (DKK) completa: plan de cuentas, series,
// IVA al 25 %, un artículo de stock y uno de servicio, clientes y proveedor.
// El periodo contable abierto cubre el año dado.
func SeedDemo(s *Store, year int) {
	s.PutCompany(entity.Company{
		ID:                    DemoCompanyID,
		Name:                  "Demo ApS",
		BaseCurrency:          "DKK",
		DefaultARAccountID:    DemoAccountAR,
		DefaultAPAccountID:    DemoAccountAP,
		SeriesJournal:         DemoSeriesJournal,
		SeriesSalesOffer:      DemoSeriesSalesOffer,
		SeriesSalesOrder:      DemoSeriesSalesOrder,
		SeriesSalesInvoice:    DemoSeriesSalesInvoice,
		SeriesPurchaseOrder:   DemoSeriesPurchaseOrder,
		SeriesPurchaseInvoice: DemoSeriesPurchaseInvoice,
	})

	for _, n := range []entity.NumberSeries{
		{Code: DemoSeriesJournal, Prefix: "J-", MinWidth: 5},
		{Code: DemoSeriesSalesOffer, Prefix: "OF-", MinWidth: 4},
		{Code: DemoSeriesSalesOrder, Prefix: "SO-", MinWidth: 4},
		{Code: DemoSeriesSalesInvoice, Prefix: "INV-", MinWidth: 4},
		{Code: DemoSeriesPurchaseOrder, Prefix: "PO-", MinWidth: 4},
		{Code: DemoSeriesPurchaseInvoice, Prefix: "PI-", MinWidth: 4},
	} {
		n.ID = DemoCompanyID + ":" + n.Code
		n.CompanyID = DemoCompanyID
		n.NextNumber = 1
		s.PutSeries(n)
	}

	for _, a := range []entity.Account{
		{ID: DemoAccountBank, Number: "5800", Name: "Bank", Type: entity.AccountAsset},
		{ID: DemoAccountAR, Number: "5600", Name: "Deudores", Type: entity.AccountAsset},
		{ID: DemoAccountInventory, Number: "5500", Name: "Inventario", Type: entity.AccountAsset},
		{ID: DemoAccountInputVat, Number: "6902", Name: "IVA soportado", Type: entity.AccountAsset},
		{ID: DemoAccountAP, Number: "6800", Name: "Proveedores", Type: entity.AccountLiability},
		{ID: DemoAccountOutputVat, Number: "6901", Name: "IVA repercutido", Type: entity.AccountLiability},
		{ID: DemoAccountSales, Number: "1000", Name: "Ventas", Type: entity.AccountIncome},
		{ID: DemoAccountCOGS, Number: "1300", Name: "Costo de ventas", Type: entity.AccountExpense},
		{ID: DemoAccountExpense, Number: "2200", Name: "Gastos", Type: entity.AccountExpense},
	} {
		a.CompanyID = DemoCompanyID
		a.IsPostable = true
		a.IsActive = true
		s.PutAccount(a)
	}
	s.PutAccount(entity.Account{
		ID: DemoAccountTotals, CompanyID: DemoCompanyID, Number: "1999",
		Name: "Total ventas", Type: entity.AccountIncome, IsActive: true,
	})

	s.PutPeriod(entity.FiscalPeriod{
		ID:        DemoFiscalPeriodID,
		CompanyID: DemoCompanyID,
		Name:      time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006"),
		StartDate: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
	})

	rate25 := decimal.RequireFromString("0.25")
	s.PutVatCode(entity.VatCode{
		ID: DemoVatSales25, CompanyID: DemoCompanyID, Code: "S25", Name: "IVA ventas 25%",
		VatType: entity.VatTypeSale, Rate: rate25, OutputVatAccountID: DemoAccountOutputVat,
		DKOnly: true,
	})
	s.PutVatCode(entity.VatCode{
		ID: DemoVatPurchase25, CompanyID: DemoCompanyID, Code: "P25", Name: "IVA compras 25%",
		VatType: entity.VatTypePurchase, Rate: rate25, InputVatAccountID: DemoAccountInputVat,
		DKOnly: true,
	})
	s.PutVatCode(entity.VatCode{
		ID: DemoVatExport, CompanyID: DemoCompanyID, Code: "EXP", Name: "Exportación exenta",
		VatType: entity.VatTypeSale, Rate: decimal.Zero, International: true,
	})

	s.PutItemGroup(entity.ItemGroup{
		ID:                       DemoItemGroup,
		CompanyID:                DemoCompanyID,
		Name:                     "Mercadería",
		DefaultSalesVatCodeID:    DemoVatSales25,
		DefaultPurchaseVatCodeID: DemoVatPurchase25,
		SalesAccountID:           DemoAccountSales,
		ExpenseAccountID:         DemoAccountExpense,
		InventoryAccountID:       DemoAccountInventory,
		COGSAccountID:            DemoAccountCOGS,
	})
	s.PutItem(entity.Item{
		ID: DemoStockItem, CompanyID: DemoCompanyID, Number: "1001", Name: "Lámpara",
		GroupID: DemoItemGroup, IsStockItem: true,
		SalesPrice: decimal.NewFromInt(100), PurchaseCost: decimal.NewFromInt(40),
	})
	s.PutItem(entity.Item{
		ID: DemoServiceItem, CompanyID: DemoCompanyID, Number: "9001", Name: "Instalación",
		GroupID: DemoItemGroup, SalesPrice: decimal.NewFromInt(200),
	})

	s.PutDebtorGroup(entity.DebtorGroup{
		ID: DemoDebtorGroup, CompanyID: DemoCompanyID, Name: "Nacionales",
		ARAccountID: DemoAccountAR, PaymentTermsDays: 14,
	})
	s.PutDebtor(entity.Debtor{
		ID: DemoDebtor, CompanyID: DemoCompanyID, Number: "10000", Name: "Hansen A/S",
		GroupID: DemoDebtorGroup, VatArea: entity.VatAreaDK,
	})
	s.PutDebtor(entity.Debtor{
		ID: DemoExportDebtor, CompanyID: DemoCompanyID, Number: "20000", Name: "Müller GmbH",
		GroupID: DemoDebtorGroup, VatArea: entity.VatAreaEUB2B,
	})
	s.PutCreditor(entity.Creditor{
		ID: DemoCreditor, CompanyID: DemoCompanyID, Number: "50000", Name: "Nordic Supply",
		VatArea: entity.VatAreaDK,
	})
}
