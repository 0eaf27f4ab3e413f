package margin

import (
	"strconv"
	"strings"

	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/storage/db"
)

// DefaultMarginPercent is used when a customer/carrier pair has no
// margin table entry, or the stored value does not parse. A missing
// entry is routine, not an error.
const DefaultMarginPercent = 15.0

type marginKey struct {
	customer string
	carrier  string
}

// MarginTable resolves customer+carrier margin percentages. Lookups are
// case- and whitespace-insensitive. Read-only after construction, safe
// for concurrent use.
type MarginTable struct {
	entries map[marginKey]string
}

func NewMarginTable(rows []db.CustomerMargin) *MarginTable {
	entries := make(map[marginKey]string, len(rows))
	for _, row := range rows {
		customer := normalizeMarginKey(row.CustomerName.String)
		carrier := normalizeMarginKey(row.CarrierCode.String)
		if customer == "" || carrier == "" {
			continue
		}
		entries[marginKey{customer: customer, carrier: carrier}] = strings.TrimSpace(row.MarginPercent.String)
	}
	return &MarginTable{entries: entries}
}

func (t *MarginTable) Resolve(customerName, carrierCode string) float64 {
	raw, ok := t.entries[marginKey{
		customer: normalizeMarginKey(customerName),
		carrier:  normalizeMarginKey(carrierCode),
	}]
	if !ok {
		return DefaultMarginPercent
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return DefaultMarginPercent
	}
	return value
}

func (t *MarginTable) Len() int {
	return len(t.entries)
}

func normalizeMarginKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
