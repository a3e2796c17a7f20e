package entities

import (
	"strings"
	"time"
)

// terminalKeywords marks workshops whose name implies finished work.
// The list mirrors the labels used on the production floor (Turkish and
// English), matched case-insensitively as substrings.
var terminalKeywords = []string{"biten", "bitti", "tamamlandı", "tamamlandi", "done", "completed"}

// Workshop is a production stage/location an order can be assigned to.
type Workshop struct {
	ID          uint64
	Name        string
	Location    string
	ContactName string
	Phone       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// IsTerminal reports whether moving an order into this workshop completes it.
// TODO: replace the name heuristic with an explicit column once the floor
// management confirms which workshops are terminal.
func (w Workshop) IsTerminal() bool {
	name := strings.ToLower(w.Name)
	for _, kw := range terminalKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// TransferStatus is the status an order acquires when it lands in this
// workshop: terminal workshops force completion, everything else means the
// order is being worked on.
func (w Workshop) TransferStatus() OrderStatus {
	if w.IsTerminal() {
		return StatusCompleted
	}
	return StatusInProgress
}
