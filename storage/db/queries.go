package db

import (
	"context"
	"database/sql"
)

const listShipmentsByDateRange = `
SELECT id, customer_name, origin_zip, dest_zip, pickup_date, package_count,
       total_weight, service_level, booked_carrier, revenue, carrier_expense, created_at
FROM shipments
WHERE pickup_date >= ? AND pickup_date <= ?
  AND (? = '' OR customer_name = ?)
ORDER BY pickup_date, id
LIMIT ? OFFSET ?
`

type ListShipmentsByDateRangeParams struct {
	StartDate    string
	EndDate      string
	CustomerName string
	Limit        int64
	Offset       int64
}

// ListShipmentsByDateRange returns one page of shipments in the date
// window, oldest first. Callers page with Limit/Offset until a short
// page comes back.
func (q *Queries) ListShipmentsByDateRange(ctx context.Context, arg ListShipmentsByDateRangeParams) ([]Shipment, error) {
	rows, err := q.db.QueryContext(ctx, listShipmentsByDateRange,
		arg.StartDate, arg.EndDate, arg.CustomerName, arg.CustomerName, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Shipment
	for rows.Next() {
		var s Shipment
		if err := rows.Scan(
			&s.ID, &s.CustomerName, &s.OriginZip, &s.DestZip, &s.PickupDate,
			&s.PackageCount, &s.TotalWeight, &s.ServiceLevel, &s.BookedCarrier,
			&s.Revenue, &s.CarrierExpense, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const insertShipment = `
INSERT INTO shipments (id, customer_name, origin_zip, dest_zip, pickup_date,
                       package_count, total_weight, service_level, booked_carrier,
                       revenue, carrier_expense)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertShipmentParams struct {
	ID             string
	CustomerName   string
	OriginZip      sql.NullString
	DestZip        sql.NullString
	PickupDate     string
	PackageCount   sql.NullInt64
	TotalWeight    sql.NullString
	ServiceLevel   sql.NullString
	BookedCarrier  sql.NullString
	Revenue        sql.NullFloat64
	CarrierExpense sql.NullFloat64
}

func (q *Queries) InsertShipment(ctx context.Context, arg InsertShipmentParams) error {
	_, err := q.db.ExecContext(ctx, insertShipment,
		arg.ID, arg.CustomerName, arg.OriginZip, arg.DestZip, arg.PickupDate,
		arg.PackageCount, arg.TotalWeight, arg.ServiceLevel, arg.BookedCarrier,
		arg.Revenue, arg.CarrierExpense)
	return err
}

const listCustomerMargins = `
SELECT id, customer_name, carrier_code, margin_percent, created_at
FROM customer_margins
WHERE customer_name IS NOT NULL AND carrier_code IS NOT NULL
`

// ListCustomerMargins returns every usable margin table row. Rows with a
// null customer or carrier are noise from the upstream import and are
// excluded.
func (q *Queries) ListCustomerMargins(ctx context.Context) ([]CustomerMargin, error) {
	rows, err := q.db.QueryContext(ctx, listCustomerMargins)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CustomerMargin
	for rows.Next() {
		var m CustomerMargin
		if err := rows.Scan(&m.ID, &m.CustomerName, &m.CarrierCode, &m.MarginPercent, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const upsertCustomerMargin = `
INSERT INTO customer_margins (id, customer_name, carrier_code, margin_percent)
VALUES (?, ?, ?, ?)
ON CONFLICT(customer_name, carrier_code)
DO UPDATE SET margin_percent = excluded.margin_percent
`

type UpsertCustomerMarginParams struct {
	ID            string
	CustomerName  sql.NullString
	CarrierCode   sql.NullString
	MarginPercent sql.NullString
}

func (q *Queries) UpsertCustomerMargin(ctx context.Context, arg UpsertCustomerMarginParams) error {
	_, err := q.db.ExecContext(ctx, upsertCustomerMargin,
		arg.ID, arg.CustomerName, arg.CarrierCode, arg.MarginPercent)
	return err
}

const listCarrierGroups = `
SELECT id, name FROM carrier_groups ORDER BY name
`

func (q *Queries) ListCarrierGroups(ctx context.Context) ([]CarrierGroup, error) {
	rows, err := q.db.QueryContext(ctx, listCarrierGroups)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CarrierGroup
	for rows.Next() {
		var g CarrierGroup
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

const getCarrierGroup = `
SELECT id, name FROM carrier_groups WHERE id = ?
`

func (q *Queries) GetCarrierGroup(ctx context.Context, id string) (CarrierGroup, error) {
	var g CarrierGroup
	err := q.db.QueryRowContext(ctx, getCarrierGroup, id).Scan(&g.ID, &g.Name)
	return g, err
}

const listCarriersByGroup = `
SELECT id, group_id, carrier_code, carrier_name
FROM carriers
WHERE group_id = ?
ORDER BY carrier_name
`

func (q *Queries) ListCarriersByGroup(ctx context.Context, groupID string) ([]Carrier, error) {
	rows, err := q.db.QueryContext(ctx, listCarriersByGroup, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Carrier
	for rows.Next() {
		var c Carrier
		if err := rows.Scan(&c.ID, &c.GroupID, &c.CarrierCode, &c.CarrierName); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const insertCarrierGroup = `
INSERT INTO carrier_groups (id, name) VALUES (?, ?)
`

func (q *Queries) InsertCarrierGroup(ctx context.Context, id, name string) error {
	_, err := q.db.ExecContext(ctx, insertCarrierGroup, id, name)
	return err
}

const insertCarrier = `
INSERT INTO carriers (id, group_id, carrier_code, carrier_name) VALUES (?, ?, ?, ?)
`

type InsertCarrierParams struct {
	ID          string
	GroupID     string
	CarrierCode string
	CarrierName string
}

func (q *Queries) InsertCarrier(ctx context.Context, arg InsertCarrierParams) error {
	_, err := q.db.ExecContext(ctx, insertCarrier,
		arg.ID, arg.GroupID, arg.CarrierCode, arg.CarrierName)
	return err
}
