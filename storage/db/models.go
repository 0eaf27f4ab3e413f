package db

import "database/sql"

// Shipment is one historical shipment row. Weight is kept as the raw
// free-text value from the source system (e.g. "2,500 lbs"); parsing
// happens downstream.
type Shipment struct {
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
	CreatedAt      string
}

// CustomerMargin is one row of the customer/carrier margin table.
// MarginPercent is stored as text; unparseable values fall back to the
// default margin at resolution time.
type CustomerMargin struct {
	ID            string
	CustomerName  sql.NullString
	CarrierCode   sql.NullString
	MarginPercent sql.NullString
	CreatedAt     string
}

type CarrierGroup struct {
	ID   string
	Name string
}

type Carrier struct {
	ID          string
	GroupID     string
	CarrierCode string
	CarrierName string
}
