package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Window tramo del estado de cuenta entre dos fechas.
// Los saldos de las líneas conservan el acumulado de toda la historia.
type Window struct {
	From    time.Time
	To      time.Time
	Opening decimal.Decimal // saldo antes de From
	Closing decimal.Decimal // saldo al cierre de To
	Entries []Entry
}

// Window recorta el estado de cuenta. Fechas en cero = sin límite.
func (s Statement) Window(from, to time.Time) Window {
	w := Window{From: from, To: to, Opening: decimal.Zero}
	for _, e := range s.Entries {
		if !from.IsZero() && e.Date.Before(from) {
			w.Opening = e.Balance
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			break
		}
		w.Entries = append(w.Entries, e)
	}
	w.Closing = w.Opening
	if n := len(w.Entries); n > 0 {
		w.Closing = w.Entries[n-1].Balance
	}
	return w
}
