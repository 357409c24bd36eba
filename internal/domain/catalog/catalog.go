package catalog

import (
	"strings"

	"github.com/molnpaket/checkout/internal/config"
	ierr "github.com/molnpaket/checkout/internal/errors"
	"github.com/shopspring/decimal"
)

// Product is one sellable package. Immutable after startup.
type Product struct {
	Key          string
	PriceID      string
	EURPriceID   string
	Name         string
	MonthlyPrice decimal.Decimal
}

// PriceIDForCurrency returns the EUR-specific price id when the requested
// currency is EUR and one is configured, otherwise the base (SEK) price id.
func (p Product) PriceIDForCurrency(currency string) string {
	if strings.EqualFold(currency, "EUR") && p.EURPriceID != "" {
		return p.EURPriceID
	}
	return p.PriceID
}

// Catalog is the static product catalog keyed by product key.
type Catalog struct {
	products map[string]Product
}

// NewCatalog builds the catalog from configuration. Returns an error when a
// configured monthly price does not parse as a decimal.
func NewCatalog(cfg *config.Configuration) (*Catalog, error) {
	products := make(map[string]Product, len(cfg.Checkout.Products))
	for key, pc := range cfg.Checkout.Products {
		price, err := decimal.NewFromString(pc.MonthlyPrice)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHintf("invalid monthly price for product %s", key).
				Mark(ierr.ErrSystem)
		}
		products[key] = Product{
			Key:          key,
			PriceID:      pc.PriceID,
			EURPriceID:   pc.EURPriceID,
			Name:         pc.Name,
			MonthlyPrice: price,
		}
	}
	return &Catalog{products: products}, nil
}

// Get returns the product for the given key.
func (c *Catalog) Get(key string) (Product, bool) {
	p, ok := c.products[key]
	return p, ok
}

// Len returns the number of configured products.
func (c *Catalog) Len() int {
	return len(c.products)
}
