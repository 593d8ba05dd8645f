// Package store provides PostgreSQL-backed storage for the sales schema.
//
// Four tables, created only (never mutated) by this system:
//   - client: one row per customer_id, created on first sighting
//   - product: one row per product_id, created on first sighting
//   - sale: one row per sale_id, references client
//   - sale_product: one row per item_id, references sale and product
//
// All inserts use ON CONFLICT (pk) DO NOTHING, so re-running the same
// extract is a no-op for keys that are already present. Insert order within
// a row is always client, product, sale, sale_product to satisfy the
// foreign keys.
//
// Production opens the lib/pq driver; tests exercise the same code paths
// on SQLite, which shares the ON CONFLICT, SAVEPOINT and foreign-key
// subset of SQL used here.
package store
