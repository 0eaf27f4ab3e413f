package margin

import (
	"context"
	"fmt"

	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/storage/db"
)

const shipmentPageSize = 500

// LoadShipments reads every historical shipment in the date window,
// optionally filtered to one customer, paging with an offset/limit
// window until a short page comes back.
func LoadShipments(ctx context.Context, queries *db.Queries, startDate, endDate, customerName string) ([]db.Shipment, error) {
	var all []db.Shipment
	var offset int64

	for {
		page, err := queries.ListShipmentsByDateRange(ctx, db.ListShipmentsByDateRangeParams{
			StartDate:    startDate,
			EndDate:      endDate,
			CustomerName: customerName,
			Limit:        shipmentPageSize,
			Offset:       offset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list shipments: %w", err)
		}

		all = append(all, page...)
		if len(page) < shipmentPageSize {
			return all, nil
		}
		offset += shipmentPageSize
	}
}
