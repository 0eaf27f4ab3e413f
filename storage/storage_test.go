package storage

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/storage/db"
)

func seedShipments(t *testing.T, queries *db.Queries, n int, customer, pickupDate string) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		err := queries.InsertShipment(ctx, db.InsertShipmentParams{
			ID:           fmt.Sprintf("%s-%s-shp-%03d", customer, pickupDate, i),
			CustomerName: customer,
			OriginZip:    sql.NullString{String: "54701", Valid: true},
			DestZip:      sql.NullString{String: "60601", Valid: true},
			PickupDate:   pickupDate,
			TotalWeight:  sql.NullString{String: "2,500 lbs", Valid: true},
		})
		require.NoError(t, err)
	}
}

func TestListShipmentsByDateRange_Paging(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	seedShipments(t, queries, 7, "Acme Corp", "2026-03-10")

	page1, err := queries.ListShipmentsByDateRange(ctx, db.ListShipmentsByDateRangeParams{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		Limit:     5,
		Offset:    0,
	})
	require.NoError(t, err)
	require.Len(t, page1, 5)

	page2, err := queries.ListShipmentsByDateRange(ctx, db.ListShipmentsByDateRangeParams{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		Limit:     5,
		Offset:    5,
	})
	require.NoError(t, err)
	assert.Len(t, page2, 2, "short page signals the end of the window")
}

func TestListShipmentsByDateRange_Filters(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	seedShipments(t, queries, 3, "Acme Corp", "2026-03-10")
	seedShipments(t, queries, 2, "Globex", "2026-03-12")
	seedShipments(t, queries, 4, "Acme Corp", "2026-06-01")

	inWindow, err := queries.ListShipmentsByDateRange(ctx, db.ListShipmentsByDateRangeParams{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		Limit:     50,
	})
	require.NoError(t, err)
	assert.Len(t, inWindow, 5, "June shipments are outside the window")

	acmeOnly, err := queries.ListShipmentsByDateRange(ctx, db.ListShipmentsByDateRangeParams{
		StartDate:    "2026-03-01",
		EndDate:      "2026-03-31",
		CustomerName: "Acme Corp",
		Limit:        50,
	})
	require.NoError(t, err)
	assert.Len(t, acmeOnly, 3)
}

func TestListCustomerMargins_ExcludesNullKeys(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, queries.UpsertCustomerMargin(ctx, db.UpsertCustomerMarginParams{
		ID:            "m1",
		CustomerName:  sql.NullString{String: "Acme Corp", Valid: true},
		CarrierCode:   sql.NullString{String: "EXLA", Valid: true},
		MarginPercent: sql.NullString{String: "18.5", Valid: true},
	}))
	require.NoError(t, queries.UpsertCustomerMargin(ctx, db.UpsertCustomerMarginParams{
		ID:          "m2",
		CarrierCode: sql.NullString{String: "SAIA", Valid: true},
	}))

	rows, err := queries.ListCustomerMargins(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme Corp", rows[0].CustomerName.String)
	assert.Equal(t, "18.5", rows[0].MarginPercent.String)
}

func TestUpsertCustomerMargin_ReplacesExisting(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	params := db.UpsertCustomerMarginParams{
		ID:            "m1",
		CustomerName:  sql.NullString{String: "Acme Corp", Valid: true},
		CarrierCode:   sql.NullString{String: "EXLA", Valid: true},
		MarginPercent: sql.NullString{String: "18.5", Valid: true},
	}
	require.NoError(t, queries.UpsertCustomerMargin(ctx, params))

	params.ID = "m2"
	params.MarginPercent = sql.NullString{String: "21.0", Valid: true}
	require.NoError(t, queries.UpsertCustomerMargin(ctx, params))

	rows, err := queries.ListCustomerMargins(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "21.0", rows[0].MarginPercent.String)
}

func TestCarrierGroupCatalog(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, queries.InsertCarrierGroup(ctx, "group-ltl", "National LTL"))
	require.NoError(t, queries.InsertCarrier(ctx, db.InsertCarrierParams{
		ID: "carrier-exla", GroupID: "group-ltl", CarrierCode: "EXLA", CarrierName: "Estes Express",
	}))
	require.NoError(t, queries.InsertCarrier(ctx, db.InsertCarrierParams{
		ID: "carrier-saia", GroupID: "group-ltl", CarrierCode: "SAIA", CarrierName: "Saia LTL Freight",
	}))

	groups, err := queries.ListCarrierGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	group, err := queries.GetCarrierGroup(ctx, "group-ltl")
	require.NoError(t, err)
	assert.Equal(t, "National LTL", group.Name)

	carriers, err := queries.ListCarriersByGroup(ctx, "group-ltl")
	require.NoError(t, err)
	assert.Len(t, carriers, 2)

	_, err = queries.GetCarrierGroup(ctx, "group-missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
