package web

import (
	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/db/controller/document"
	"github.com/stockroom/stockroom/internal/web/handler"
	"github.com/stockroom/stockroom/internal/web/handler/collection"
	"github.com/stockroom/stockroom/internal/web/handler/dashboard"
	"github.com/stockroom/stockroom/internal/web/handler/permission"
	"github.com/stockroom/stockroom/internal/web/handler/report"
	"github.com/stockroom/stockroom/internal/web/handler/upload"
)

// APIPrefix is the common prefix of all route groups.
const APIPrefix = "/api"

// Group is a route group mounted on Prefix.
type Group struct {
	// Name is the last path element of Prefix.
	Name    string
	Prefix  string
	Handler handler.Service
}

func newGroup(name string, h handler.Service) Group {
	return Group{
		Name:    name,
		Prefix:  APIPrefix + "/" + name,
		Handler: h,
	}
}

func collectionGroup(name string) Group {
	coll, ok := document.Lookup(name)
	if !ok {
		panic("unknown collection " + name)
	}

	return newGroup(name, collection.New(coll))
}

// Groups returns fresh handlers of all route groups in mount order.
func Groups() []Group {
	return []Group{
		collectionGroup(document.Users),
		collectionGroup(document.Suppliers),
		collectionGroup(document.Customers),
		collectionGroup(document.SKUs),
		collectionGroup(document.Warehouses),
		collectionGroup(document.PurchaseOrders),
		collectionGroup(document.PurchaseIndents),
		collectionGroup(document.SalesOrders),
		collectionGroup(document.SalesReturns),
		collectionGroup(document.Invoices),
		collectionGroup(document.StockAdjustments),
		collectionGroup(document.Transactions),
		newGroup("reports", &report.Service{}),
		newGroup("upload", &upload.Service{}),
		collectionGroup(document.VendorMappings),
		newGroup("dashboard", &dashboard.Service{}),
		newGroup("permissions", &permission.Service{}),
	}
}

// Prefixes returns the mounted prefixes in order.
func Prefixes() []string {
	groups := Groups()
	out := make([]string, 0, len(groups))

	for _, g := range groups {
		out = append(out, g.Prefix)
	}

	return out
}

func mount(app *fiber.App, cfg *config.Config, db *gorm.DB, groups []Group) error {
	for _, g := range groups {
		if err := g.Handler.Init(app.Group(g.Prefix), cfg, db); err != nil {
			return err
		}
	}

	return nil
}
