package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Ledger     bool      `json:"ledger"`
	LedgerSize int       `json:"ledger_size"`
	LastCheck  time.Time `json:"last_check"`
}
