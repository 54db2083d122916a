package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port              string
	DBDSN             string
	ReceiptsDir       string
	LowStockThreshold int
	LogFile           string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "inventory.db"
	} // sqlite file in project root
	receipts := os.Getenv("RECEIPTS_DIR")
	if receipts == "" {
		receipts = "receipts"
	}
	threshold := 5
	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			threshold = n
		} else {
			log.Printf("[warn] ignoring bad LOW_STOCK_THRESHOLD=%q", v)
		}
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./invmgr.log" // default log sink in project root
	}

	cfg := Config{Port: port, DBDSN: dsn, ReceiptsDir: receipts, LowStockThreshold: threshold, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s RECEIPTS_DIR=%s LOW_STOCK_THRESHOLD=%d LOG_FILE=%s",
		cfg.Port, cfg.DBDSN, cfg.ReceiptsDir, cfg.LowStockThreshold, cfg.LogFile)
	return cfg
}
