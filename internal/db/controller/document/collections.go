package document

// Collection names.
const (
	Users            = "users"
	Suppliers        = "suppliers"
	Customers        = "customers"
	SKUs             = "skus"
	Warehouses       = "warehouses"
	PurchaseOrders   = "purchase-orders"
	PurchaseIndents  = "purchase-indents"
	SalesOrders      = "sales-orders"
	SalesReturns     = "sales-returns"
	Invoices         = "invoices"
	StockAdjustments = "stock-adjustments"
	Transactions     = "transactions"
	VendorMappings   = "vendor-mappings"
)

// Collections lists every known collection in route mount order.
var Collections = []Collection{
	{
		Name:       Users,
		BeforeSave: HashField("password"),
		Hidden:     []string{"password"},
	},
	{Name: Suppliers},
	{Name: Customers},
	{Name: SKUs},
	{Name: Warehouses},
	{Name: PurchaseOrders},
	{Name: PurchaseIndents},
	{Name: SalesOrders},
	{Name: SalesReturns},
	{Name: Invoices},
	{Name: StockAdjustments},
	{Name: Transactions},
	{Name: VendorMappings},
}

// Lookup returns the collection called name.
func Lookup(name string) (Collection, bool) {
	for _, c := range Collections {
		if c.Name == name {
			return c, true
		}
	}

	return Collection{}, false
}
