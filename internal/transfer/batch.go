package transfer

// ItemOutcome is the result of submitting one cost record.
type ItemOutcome struct {
	CatalogID  uint64
	CostItemID uint64
	Err        error
}

// BatchResult makes the best-effort nature of the cost-record batch explicit:
// the caller sees every per-item outcome and decides what to do with the
// failures instead of having them silently swallowed.
type BatchResult struct {
	Items []ItemOutcome
}

func (r BatchResult) Succeeded() int {
	n := 0
	for _, it := range r.Items {
		if it.Err == nil {
			n++
		}
	}
	return n
}

func (r BatchResult) Failed() []ItemOutcome {
	var out []ItemOutcome
	for _, it := range r.Items {
		if it.Err != nil {
			out = append(out, it)
		}
	}
	return out
}
