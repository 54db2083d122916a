package receipt

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/domain"
)

// Emitter renders committed billing records to plain-text files in Dir.
// It is strictly best-effort from the caller's point of view: a committed
// sale is the source of truth and an emitter failure never undoes it.
type Emitter struct {
	Dir string

	now func() time.Time // test hook
}

func NewEmitter(dir string) *Emitter {
	return &Emitter{Dir: dir, now: time.Now}
}

// Write renders rec into Dir/receipt_<YYYYMMDD_HHMMSS>.txt, creating Dir on
// first use. If two sales land in the same second the second file gets a
// short uuid suffix instead of clobbering the first.
func (e *Emitter) Write(rec domain.BillingRecord) (string, error) {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return "", err
	}

	ts := e.now()
	name := fmt.Sprintf("receipt_%s.txt", ts.Format("20060102_150405"))
	path := filepath.Join(e.Dir, name)
	if _, err := os.Stat(path); err == nil {
		name = fmt.Sprintf("receipt_%s_%s.txt", ts.Format("20060102_150405"), uuid.NewString()[:8])
		path = filepath.Join(e.Dir, name)
	}

	body := fmt.Sprintf(`=== PRODUCT RECEIPT ===
Date: %s
Customer: %s
Product: %s
Quantity: %d
Price per unit: %.2f
Total: %.2f
=======================
`, ts.Format("2006-01-02 15:04:05"),
		rec.CustomerName,
		rec.ProductName,
		rec.Quantity,
		unitPrice(rec),
		rec.Total)

	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return path, err
	}
	return path, nil
}

// Open hands the receipt to the platform's default text viewer. No
// guarantee is made; the error is for a warning banner only.
func (e *Emitter) Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}

func unitPrice(rec domain.BillingRecord) float64 {
	if rec.Quantity <= 0 {
		return 0
	}
	return rec.Total / float64(rec.Quantity)
}
