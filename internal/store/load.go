package store

import (
	"context"
	"database/sql"

	"github.com/fashionstore/ingest/internal/ingest"
)

// LoadSales inserts the filtered rows in one transaction. Each row attempts
// the four-table sequence client, product, sale, sale_product, every insert
// conflict-tolerant on its primary key. A row whose sequence errors is
// rolled back to its savepoint and skipped, so it leaves no partial
// entities and the transaction stays usable for the remaining rows. The
// transaction commits exactly once after all rows were attempted.
//
// An empty input returns status "skipped" without touching the database.
// Only a begin or commit failure fails the whole operation.
func (s *Store) LoadSales(ctx context.Context, rows []ingest.SaleRecord) (ingest.LoadResult, error) {
	if len(rows) == 0 {
		return ingest.LoadResult{Status: ingest.LoadSkipped, Message: "no rows to load"}, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ingest.LoadResult{}, &ingest.StorageError{Op: "begin", Err: err}
	}
	defer tx.Rollback() // no-op after commit

	outcomes := make([]ingest.RowOutcome, 0, len(rows))
	for i, rec := range rows {
		out := ingest.RowOutcome{Index: i, SaleID: rec.SaleID, ItemID: rec.ItemID}
		out.Err = s.insertRow(ctx, tx, rec)
		if out.Err != nil {
			s.log.Error("row insert failed, skipping",
				"index", i, "sale_id", rec.SaleID, "item_id", rec.ItemID, "error", out.Err)
		}
		outcomes = append(outcomes, out)
	}

	if err := tx.Commit(); err != nil {
		return ingest.LoadResult{}, &ingest.StorageError{Op: "commit", Err: err}
	}
	return ingest.SummarizeOutcomes(outcomes), nil
}

// insertRow runs one row's insert sequence inside a savepoint. On error the
// savepoint is rolled back, so either all four entities of the row exist or
// none do.
func (s *Store) insertRow(ctx context.Context, tx *sql.Tx, rec ingest.SaleRecord) error {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT sale_row"); err != nil {
		return err
	}
	if err := insertEntities(ctx, tx, rec); err != nil {
		// ROLLBACK TO leaves the savepoint in place; release it so the
		// next row starts from a flat savepoint stack.
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT sale_row"); rbErr != nil {
			return rbErr
		}
		_, _ = tx.ExecContext(ctx, "RELEASE SAVEPOINT sale_row")
		return err
	}
	_, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT sale_row")
	return err
}

// insertEntities performs the four inserts in referential order.
func insertEntities(ctx context.Context, tx *sql.Tx, rec ingest.SaleRecord) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO client (customer_id, first_name, last_name, email, country, signup_date, gender, age_range)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (customer_id) DO NOTHING
	`,
		nullable(rec.CustomerID),
		nullable(rec.FirstName),
		nullable(rec.LastName),
		nullable(rec.Email),
		nullable(rec.Country),
		nullable(rec.SignupDate),
		nullable(rec.Gender),
		nullable(rec.AgeRange),
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO product (product_id, product_name, brand, category, cost_price, color, size, catalog_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id) DO NOTHING
	`,
		nullable(rec.ProductID),
		nullable(rec.ProductName),
		nullable(rec.Brand),
		nullable(rec.Category),
		nullable(rec.CostPrice),
		nullable(rec.Color),
		nullable(rec.Size),
		nullable(rec.CatalogPrice),
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sale (sale_id, sale_date, channel, channel_campaigns, customer_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (sale_id) DO NOTHING
	`,
		nullable(rec.SaleID),
		nullable(rec.SaleDate),
		nullable(rec.Channel),
		nullable(rec.ChannelCampaigns),
		nullable(rec.CustomerID),
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sale_product (item_id, sale_id, product_id, quantity, discount_applied)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (item_id) DO NOTHING
	`,
		nullable(rec.ItemID),
		nullable(rec.SaleID),
		nullable(rec.ProductID),
		nullable(rec.Quantity),
		nullable(rec.DiscountApplied),
	); err != nil {
		return err
	}

	return nil
}

// nullable maps empty CSV fields to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
