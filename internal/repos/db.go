package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer. One pooled connection serializes
	// concurrent transactions at the pool instead of surfacing SQLITE_BUSY,
	// and makes a ":memory:" DSN behave as one shared database.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed a small demo catalog if DB is empty (idempotent; safe to run
	// on every start).
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

// ensureSchema creates both tables on every launch; all statements are
// IF NOT EXISTS so re-running is a no-op.
//
// billing_records deliberately has no foreign key to products: a record
// carries its own product_name/total snapshot and must survive deletion
// of the product it references.
func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0)
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_name_nocase ON products(LOWER(name));

CREATE TABLE IF NOT EXISTS billing_records(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_name TEXT,
  product_id INTEGER,
  product_name TEXT,
  quantity INTEGER,
  total NUMERIC,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_billing_product    ON billing_records(product_id);
CREATE INDEX IF NOT EXISTS idx_billing_created_at ON billing_records(created_at);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(name,price,stock) VALUES
	  ('Widget', 9.99, 12),
	  ('Gadget', 24.50, 4),
	  ('Sprocket', 1.75, 0)`)
	return tx.Commit()
}
