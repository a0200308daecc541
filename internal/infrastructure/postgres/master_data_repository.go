package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

var (
	_ repository.ItemRepository     = (*ItemRepo)(nil)
	_ repository.VatCodeRepository  = (*VatCodeRepo)(nil)
	_ repository.DebtorRepository   = (*DebtorRepo)(nil)
	_ repository.CreditorRepository = (*CreditorRepo)(nil)
)

// ItemRepo artículos y grupos de artículos.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByID obtiene un artículo.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, company_id, number, name, group_id, is_stock_item, sales_price, purchase_cost
		FROM items WHERE id = $1`
	var it entity.Item
	var group *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.CompanyID, &it.Number, &it.Name, &group, &it.IsStockItem, &it.SalesPrice, &it.PurchaseCost,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	it.GroupID = deref(group)
	return &it, nil
}

// GetGroup obtiene un grupo de artículos con sus cuentas.
func (r *ItemRepo) GetGroup(ctx context.Context, id string) (*entity.ItemGroup, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, company_id, name, default_sales_vat_code_id, default_purchase_vat_code_id,
		       sales_account_id, expense_account_id, inventory_account_id, cogs_account_id
		FROM item_groups WHERE id = $1`
	var g entity.ItemGroup
	var salesVat, purchaseVat, sales, expense, inventory, cogs *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.CompanyID, &g.Name, &salesVat, &purchaseVat, &sales, &expense, &inventory, &cogs,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item group: %w", err)
	}
	g.DefaultSalesVatCodeID = deref(salesVat)
	g.DefaultPurchaseVatCodeID = deref(purchaseVat)
	g.SalesAccountID = deref(sales)
	g.ExpenseAccountID = deref(expense)
	g.InventoryAccountID = deref(inventory)
	g.COGSAccountID = deref(cogs)
	return &g, nil
}

// VatCodeRepo códigos de IVA.
type VatCodeRepo struct {
	q Querier
}

// NewVatCodeRepository construye el adaptador.
func NewVatCodeRepository(q Querier) *VatCodeRepo {
	return &VatCodeRepo{q: q}
}

// GetByID obtiene un código de IVA.
func (r *VatCodeRepo) GetByID(ctx context.Context, id string) (*entity.VatCode, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, company_id, code, name, vat_type, rate, deduction_rate, deduction_method,
		       output_vat_account_id, input_vat_account_id,
		       dk_only, dk_mixed, international, international_mixed, special_scheme
		FROM vat_codes WHERE id = $1`
	var v entity.VatCode
	var output, input *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.CompanyID, &v.Code, &v.Name, &v.VatType, &v.Rate, &v.DeductionRate, &v.DeductionMethod,
		&output, &input,
		&v.DKOnly, &v.DKMixed, &v.International, &v.InternationalMixed, &v.SpecialScheme,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vat code: %w", err)
	}
	v.OutputVatAccountID = deref(output)
	v.InputVatAccountID = deref(input)
	return &v, nil
}

// DebtorRepo clientes y grupos de clientes.
type DebtorRepo struct {
	q Querier
}

// NewDebtorRepository construye el adaptador.
func NewDebtorRepository(q Querier) *DebtorRepo {
	return &DebtorRepo{q: q}
}

// GetByID obtiene un cliente.
func (r *DebtorRepo) GetByID(ctx context.Context, id string) (*entity.Debtor, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var d entity.Debtor
	var group *string
	err := r.q.QueryRow(ctx,
		`SELECT id, company_id, number, name, group_id, vat_area FROM debtors WHERE id = $1`, id,
	).Scan(&d.ID, &d.CompanyID, &d.Number, &d.Name, &group, &d.VatArea)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get debtor: %w", err)
	}
	d.GroupID = deref(group)
	return &d, nil
}

// GetGroup obtiene un grupo de clientes.
func (r *DebtorRepo) GetGroup(ctx context.Context, id string) (*entity.DebtorGroup, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var g entity.DebtorGroup
	var ar *string
	err := r.q.QueryRow(ctx,
		`SELECT id, company_id, name, ar_account_id, payment_terms_days FROM debtor_groups WHERE id = $1`, id,
	).Scan(&g.ID, &g.CompanyID, &g.Name, &ar, &g.PaymentTermsDays)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get debtor group: %w", err)
	}
	g.ARAccountID = deref(ar)
	return &g, nil
}

// CreditorRepo proveedores.
type CreditorRepo struct {
	q Querier
}

// NewCreditorRepository construye el adaptador.
func NewCreditorRepository(q Querier) *CreditorRepo {
	return &CreditorRepo{q: q}
}

// GetByID obtiene un proveedor.
func (r *CreditorRepo) GetByID(ctx context.Context, id string) (*entity.Creditor, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var c entity.Creditor
	err := r.q.QueryRow(ctx,
		`SELECT id, company_id, number, name, vat_area FROM creditors WHERE id = $1`, id,
	).Scan(&c.ID, &c.CompanyID, &c.Number, &c.Name, &c.VatArea)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get creditor: %w", err)
	}
	return &c, nil
}
