package ingest

import (
	"fmt"
	"strings"
)

// SaleRecord is one line item of the sales extract: customer, product and
// sale attributes denormalized into a single flat row. Values are kept as
// the raw CSV strings; empty fields become SQL NULL at load time.
type SaleRecord struct {
	CustomerID       string
	FirstName        string
	LastName         string
	Email            string
	Country          string
	SignupDate       string
	Gender           string
	AgeRange         string
	ProductID        string
	ProductName      string
	Brand            string
	Category         string
	CostPrice        string
	Color            string
	Size             string
	CatalogPrice     string
	SaleID           string
	SaleDate         string
	Channel          string
	ChannelCampaigns string
	ItemID           string
	Quantity         string
	DiscountApplied  string
}

// extractColumns are the header columns the extract must carry, in no
// particular order. The CSV may contain extra columns; they are ignored.
var extractColumns = []string{
	"customer_id", "first_name", "last_name", "email", "country",
	"signup_date", "gender", "age_range",
	"product_id", "product_name", "brand", "category",
	"cost_price", "color", "size", "catalog_price",
	"sale_id", "sale_date", "channel", "channel_campaigns",
	"item_id", "quantity", "discount_applied",
}

// columnIndex maps each required column name to its position in the header
// row. Returns an error naming the first missing column.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range extractColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q in header", col)
		}
	}
	return idx, nil
}

// recordFromRow binds one CSV row to a SaleRecord using the header index.
func recordFromRow(idx map[string]int, row []string) (SaleRecord, error) {
	field := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", fmt.Errorf("row has %d fields, column %q is at %d", len(row), col, i)
		}
		return row[i], nil
	}

	var rec SaleRecord
	for col, dst := range map[string]*string{
		"customer_id":       &rec.CustomerID,
		"first_name":        &rec.FirstName,
		"last_name":         &rec.LastName,
		"email":             &rec.Email,
		"country":           &rec.Country,
		"signup_date":       &rec.SignupDate,
		"gender":            &rec.Gender,
		"age_range":         &rec.AgeRange,
		"product_id":        &rec.ProductID,
		"product_name":      &rec.ProductName,
		"brand":             &rec.Brand,
		"category":          &rec.Category,
		"cost_price":        &rec.CostPrice,
		"color":             &rec.Color,
		"size":              &rec.Size,
		"catalog_price":     &rec.CatalogPrice,
		"sale_id":           &rec.SaleID,
		"sale_date":         &rec.SaleDate,
		"channel":           &rec.Channel,
		"channel_campaigns": &rec.ChannelCampaigns,
		"item_id":           &rec.ItemID,
		"quantity":          &rec.Quantity,
		"discount_applied":  &rec.DiscountApplied,
	} {
		v, err := field(col)
		if err != nil {
			return SaleRecord{}, err
		}
		*dst = v
	}
	return rec, nil
}

// key returns a composite of every field, used to collapse exact-duplicate
// rows. \x1f (unit separator) cannot appear in CSV field values that matter
// here, so joins are unambiguous.
func (r SaleRecord) key() string {
	return strings.Join([]string{
		r.CustomerID, r.FirstName, r.LastName, r.Email, r.Country,
		r.SignupDate, r.Gender, r.AgeRange,
		r.ProductID, r.ProductName, r.Brand, r.Category,
		r.CostPrice, r.Color, r.Size, r.CatalogPrice,
		r.SaleID, r.SaleDate, r.Channel, r.ChannelCampaigns,
		r.ItemID, r.Quantity, r.DiscountApplied,
	}, "\x1f")
}
