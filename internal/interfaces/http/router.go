package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-posting/internal/application/documents"
	"github.com/jhoicas/erp-posting/internal/application/fx"
	"github.com/jhoicas/erp-posting/internal/application/inventory"
	"github.com/jhoicas/erp-posting/internal/application/ledger"
	"github.com/jhoicas/erp-posting/internal/application/numbering"
	"github.com/jhoicas/erp-posting/internal/application/posting"
	"github.com/jhoicas/erp-posting/internal/application/rates"
	"github.com/jhoicas/erp-posting/internal/application/settlement"
	"github.com/jhoicas/erp-posting/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Allocator   *numbering.Allocator
	Resolver    *fx.Resolver
	ImportECB   *rates.ImportECBUseCase // nil = importación deshabilitada
	FIFO        *inventory.FIFOUseCase
	Journals    *ledger.JournalService
	Vouchers    *ledger.VoucherUseCase
	Documents   *documents.Service
	Engine      *posting.Engine
	Settlements *settlement.Service
	Logger      zerolog.Logger
	JWTSecret   string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; la
// entidad sale del token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestID(), RequestLogger(deps.Logger), AuthMiddleware(deps.JWTSecret))
	posters := RequireRole(jwt.RoleAdmin, jwt.RoleAccountant)

	ledgerHandler := NewLedgerHandler(deps.Allocator, deps.Journals, deps.Vouchers)
	api.Post("/number-series/:code/allocate", ledgerHandler.Allocate)
	api.Post("/journals", ledgerHandler.CreateJournal)
	api.Post("/journals/:id/post", posters, ledgerHandler.PostJournal)
	api.Get("/journals/:id/pdf", ledgerHandler.JournalPDF)

	fxHandler := NewFXHandler(deps.Resolver, deps.ImportECB)
	api.Get("/fx-rates", fxHandler.GetRate)
	api.Post("/fx-rates/ecb/import", RequireRole(jwt.RoleAdmin), fxHandler.ImportECB)

	inventoryHandler := NewInventoryHandler(deps.FIFO)
	api.Post("/inventory/consume", inventoryHandler.Consume)

	sales := api.Group("/sales-documents")
	salesHandler := NewSalesHandler(deps.Documents, deps.Engine, deps.Settlements)
	sales.Post("/", salesHandler.Create)
	sales.Post("/:id/lines", salesHandler.AddLine)
	sales.Post("/:id/convert-to-order", salesHandler.ConvertToOrder)
	sales.Post("/:id/convert-to-invoice", salesHandler.ConvertToInvoice)
	sales.Post("/:id/post", posters, salesHandler.Post)
	sales.Post("/:id/mark-credited", posters, salesHandler.MarkCredited)
	sales.Post("/:id/sync-payment-state", salesHandler.SyncPaymentState)

	purchases := api.Group("/purchase-documents")
	purchaseHandler := NewPurchaseHandler(deps.Documents, deps.Engine)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Post("/:id/lines", purchaseHandler.AddLine)
	purchases.Post("/:id/convert-to-invoice", purchaseHandler.ConvertToInvoice)
	purchases.Post("/:id/post", posters, purchaseHandler.Post)

	settlementHandler := NewSettlementHandler(deps.Settlements)
	api.Post("/settlements", settlementHandler.Create)
	api.Post("/settlements/:id/settle", posters, settlementHandler.Settle)
	api.Get("/debtors/:id/open-items", settlementHandler.DebtorOpenItems)
}
