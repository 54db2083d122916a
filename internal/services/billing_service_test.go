package services_test

import (
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/domain"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/repos"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/services"
)

func newBilling(t *testing.T) (*services.BillingService, *repos.ProductRepo, *repos.BillingRepo, *sqlx.DB) {
	t.Helper()
	db := memdb(t)
	prods := repos.NewProductRepo(db)
	billing := repos.NewBillingRepo(db)
	return services.NewBillingService(db, prods, billing), prods, billing, db
}

func mustInsert(t *testing.T, prods *repos.ProductRepo, name string, price float64, stock int) int64 {
	t.Helper()
	id, err := prods.Insert(name, price, stock)
	require.NoError(t, err)
	return id
}

func TestSell_CommitsRecordAndDecrement(t *testing.T) {
	svc, prods, billing, _ := newBilling(t)
	id := mustInsert(t, prods, "Widget", 9.99, 3)

	rec, err := svc.Sell(id, "Alice", 1)
	require.NoError(t, err)
	require.Equal(t, id, rec.ProductID)
	require.Equal(t, "Widget", rec.ProductName)
	require.Equal(t, "Alice", rec.CustomerName)
	require.Equal(t, 1, rec.Quantity)
	require.InDelta(t, 9.99, rec.Total, 1e-9)
	require.NotZero(t, rec.ID)
	require.NotEmpty(t, rec.CreatedAt)

	p, err := prods.Get(id)
	require.NoError(t, err)
	require.Equal(t, 2, p.Stock)

	n, err := billing.CountByProduct(id)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestSell_QuantityScalesTotal(t *testing.T) {
	svc, prods, _, _ := newBilling(t)
	id := mustInsert(t, prods, "Gadget", 4.25, 10)

	rec, err := svc.Sell(id, "Bob", 4)
	require.NoError(t, err)
	require.Equal(t, 4, rec.Quantity)
	require.InDelta(t, 17.00, rec.Total, 1e-9)

	p, err := prods.Get(id)
	require.NoError(t, err)
	require.Equal(t, 6, p.Stock)
}

func TestSell_InsufficientStock(t *testing.T) {
	svc, prods, billing, _ := newBilling(t)
	id := mustInsert(t, prods, "Widget", 9.99, 0)

	_, err := svc.Sell(id, "Bob", 1)
	require.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))

	var rej *domain.Rejection
	require.ErrorAs(t, err, &rej)
	require.Equal(t, 0, rej.Available)

	// Stock untouched, nothing recorded.
	p, err := prods.Get(id)
	require.NoError(t, err)
	require.Equal(t, 0, p.Stock)
	n, err := billing.CountByProduct(id)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSell_PartialStockRejected(t *testing.T) {
	svc, prods, _, _ := newBilling(t)
	id := mustInsert(t, prods, "Widget", 9.99, 2)

	_, err := svc.Sell(id, "Bob", 3)
	require.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))
	var rej *domain.Rejection
	require.ErrorAs(t, err, &rej)
	require.Equal(t, 2, rej.Available)

	p, err := prods.Get(id)
	require.NoError(t, err)
	require.Equal(t, 2, p.Stock)
}

func TestSell_InputValidation(t *testing.T) {
	svc, prods, billing, _ := newBilling(t)
	id := mustInsert(t, prods, "Widget", 9.99, 3)

	_, err := svc.Sell(id, "   ", 1)
	require.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = svc.Sell(id, "Alice", 0)
	require.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = svc.Sell(9999, "Alice", 1)
	require.Equal(t, domain.KindNotFound, domain.KindOf(err))

	n, err := billing.CountByProduct(id)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSell_SnapshotSurvivesProductDelete(t *testing.T) {
	svc, prods, billing, _ := newBilling(t)
	id := mustInsert(t, prods, "Widget", 9.99, 3)

	rec, err := svc.Sell(id, "Alice", 1)
	require.NoError(t, err)

	// Rename, then delete the product entirely.
	_, err = prods.Update(id, "Renamed", 1.00, 9)
	require.NoError(t, err)
	_, err = prods.Delete(id)
	require.NoError(t, err)

	got, err := billing.ListByProduct(id)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, rec.ID, got[0].ID)
	require.Equal(t, "Widget", got[0].ProductName)
	require.InDelta(t, 9.99, got[0].Total, 1e-9)
}

func TestSell_StoreFailureRollsBack(t *testing.T) {
	svc, prods, _, db := newBilling(t)
	id := mustInsert(t, prods, "Widget", 9.99, 3)

	// Break the ledger mid-flight: the in-tx insert fails after the stock
	// check already passed.
	_, err := db.Exec(`DROP TABLE billing_records`)
	require.NoError(t, err)

	_, err = svc.Sell(id, "Alice", 1)
	require.Equal(t, domain.KindTransactionFailed, domain.KindOf(err))
	var rej *domain.Rejection
	require.ErrorAs(t, err, &rej)
	require.Error(t, rej.Cause, "TransactionFailed must wrap the store error")

	// The whole unit rolled back: stock unchanged, and once the ledger is
	// back there is nothing in it.
	p, err := prods.Get(id)
	require.NoError(t, err)
	require.Equal(t, 3, p.Stock)

	_, err = db.Exec(`CREATE TABLE billing_records(
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  customer_name TEXT, product_id INTEGER, product_name TEXT,
	  quantity INTEGER, total NUMERIC, created_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)
	n, err := repos.NewBillingRepo(db).CountByProduct(id)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSell_ClosedStoreFailsClosed(t *testing.T) {
	svc, prods, _, db := newBilling(t)
	id := mustInsert(t, prods, "Widget", 9.99, 3)
	require.NoError(t, db.Close())

	_, err := svc.Sell(id, "Alice", 1)
	require.Equal(t, domain.KindTransactionFailed, domain.KindOf(err))
}

func TestSell_ConcurrentLastUnit(t *testing.T) {
	svc, prods, billing, _ := newBilling(t)
	id := mustInsert(t, prods, "Widget", 9.99, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Sell(id, "Racer", 1)
		}(i)
	}
	wg.Wait()

	okCount, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case domain.KindOf(err) == domain.KindInsufficientStock:
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, okCount, "exactly one sale must win the last unit")
	require.Equal(t, 1, insufficient)

	p, err := prods.Get(id)
	require.NoError(t, err)
	require.Equal(t, 0, p.Stock)
	n, err := billing.CountByProduct(id)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestSell_ConcurrentNoLostDecrements(t *testing.T) {
	const initial = 10
	const callers = 25

	svc, prods, billing, _ := newBilling(t)
	id := mustInsert(t, prods, "Widget", 2.50, initial)

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Sell(id, "Racer", 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.Equal(t, domain.KindInsufficientStock, domain.KindOf(err), "only stock exhaustion may fail: %v", err)
		}
	}
	require.Equal(t, initial, succeeded)

	p, err := prods.Get(id)
	require.NoError(t, err)
	require.Equal(t, 0, p.Stock, "final stock must equal initial minus successful sales")

	n, err := billing.CountByProduct(id)
	require.NoError(t, err)
	require.Equal(t, succeeded, n, "one record per successful sale, no more, no less")
}
