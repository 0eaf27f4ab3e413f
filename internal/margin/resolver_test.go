package margin

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/storage/db"
)

func marginRow(customer, carrier, percent string) db.CustomerMargin {
	return db.CustomerMargin{
		CustomerName:  sql.NullString{String: customer, Valid: true},
		CarrierCode:   sql.NullString{String: carrier, Valid: true},
		MarginPercent: sql.NullString{String: percent, Valid: true},
	}
}

func TestMarginTable_ExactMatch(t *testing.T) {
	table := NewMarginTable([]db.CustomerMargin{
		marginRow("ACME CORP", "EXLA", "22.5"),
	})

	assert.Equal(t, 22.5, table.Resolve("ACME CORP", "EXLA"))
}

func TestMarginTable_CaseAndWhitespaceInsensitive(t *testing.T) {
	table := NewMarginTable([]db.CustomerMargin{
		marginRow("Acme Corp ", "exla", "22.5"),
	})

	assert.Equal(t, 22.5, table.Resolve("ACME CORP", "EXLA"))
	assert.Equal(t, 22.5, table.Resolve("  acme corp", " Exla "))
}

func TestMarginTable_MissingEntryFallsBack(t *testing.T) {
	table := NewMarginTable([]db.CustomerMargin{
		marginRow("ACME CORP", "EXLA", "22.5"),
	})

	assert.Equal(t, DefaultMarginPercent, table.Resolve("ACME CORP", "SAIA"))
	assert.Equal(t, DefaultMarginPercent, table.Resolve("OTHER CO", "EXLA"))
}

func TestMarginTable_UnparseableValueFallsBack(t *testing.T) {
	table := NewMarginTable([]db.CustomerMargin{
		marginRow("ACME CORP", "EXLA", "n/a"),
	})

	assert.Equal(t, DefaultMarginPercent, table.Resolve("ACME CORP", "EXLA"))
}

func TestMarginTable_SkipsRowsWithBlankKeys(t *testing.T) {
	table := NewMarginTable([]db.CustomerMargin{
		marginRow("", "EXLA", "20"),
		marginRow("ACME CORP", "  ", "20"),
		marginRow("ACME CORP", "EXLA", "20"),
	})

	assert.Equal(t, 1, table.Len())
}
