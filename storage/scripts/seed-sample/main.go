package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/storage/db"
)

const (
	numCustomers = 12
	numShipments = 400
)

var serviceLevels = []string{"", "", "Standard", "Guaranteed AM", "Guaranteed PM", "Expedited"}

var carriers = []struct {
	ID   string
	Code string
	Name string
}{
	{"carrier-estes", "EXLA", "Estes Express"},
	{"carrier-saia", "SAIA", "Saia LTL Freight"},
	{"carrier-odfl", "ODFL", "Old Dominion"},
	{"carrier-xpo", "XPO", "XPO Logistics"},
	{"carrier-rl", "RLCA", "R+L Carriers"},
	{"carrier-abf", "ABFS", "ABF Freight"},
}

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./db/rfqtool.db"
	}

	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	queries := db.New(database)
	ctx := context.Background()

	// Carrier group with members
	groupID := "group-ltl-national"
	if err := queries.InsertCarrierGroup(ctx, groupID, "National LTL"); err != nil {
		log.Printf("carrier group exists, continuing: %v", err)
	}
	for _, carrier := range carriers {
		err := queries.InsertCarrier(ctx, db.InsertCarrierParams{
			ID:          carrier.ID,
			GroupID:     groupID,
			CarrierCode: carrier.Code,
			CarrierName: carrier.Name,
		})
		if err != nil {
			log.Printf("carrier %s exists, continuing: %v", carrier.ID, err)
		}
	}

	// Customers with margin table rows for a few carriers each
	customerNames := make([]string, 0, numCustomers)
	for i := 0; i < numCustomers; i++ {
		customerNames = append(customerNames, gofakeit.Company())
	}

	marginRows := 0
	for _, customer := range customerNames {
		for _, carrier := range carriers {
			if rand.Float64() > 0.4 {
				continue
			}
			percent := fmt.Sprintf("%.1f", 8.0+rand.Float64()*20.0)
			err := queries.UpsertCustomerMargin(ctx, db.UpsertCustomerMarginParams{
				ID:            uuid.New().String(),
				CustomerName:  sql.NullString{String: customer, Valid: true},
				CarrierCode:   sql.NullString{String: carrier.Code, Valid: true},
				MarginPercent: sql.NullString{String: percent, Valid: true},
			})
			if err != nil {
				log.Fatalf("Failed to upsert margin row: %v", err)
			}
			marginRows++
		}
	}

	// Historical shipments over the last 90 days
	for i := 0; i < numShipments; i++ {
		customer := customerNames[rand.Intn(len(customerNames))]
		pickup := time.Now().AddDate(0, 0, -rand.Intn(90)).Format("2006-01-02")
		weight := fmt.Sprintf("%s lbs", formatThousands(500+rand.Intn(15000)))

		err := queries.InsertShipment(ctx, db.InsertShipmentParams{
			ID:             uuid.New().String(),
			CustomerName:   customer,
			OriginZip:      sql.NullString{String: gofakeit.Zip(), Valid: true},
			DestZip:        sql.NullString{String: gofakeit.Zip(), Valid: true},
			PickupDate:     pickup,
			PackageCount:   sql.NullInt64{Int64: int64(1 + rand.Intn(8)), Valid: true},
			TotalWeight:    sql.NullString{String: weight, Valid: true},
			ServiceLevel:   sql.NullString{String: serviceLevels[rand.Intn(len(serviceLevels))], Valid: true},
			BookedCarrier:  sql.NullString{String: carriers[rand.Intn(len(carriers))].Name, Valid: true},
			Revenue:        sql.NullFloat64{Float64: 300 + rand.Float64()*2000, Valid: true},
			CarrierExpense: sql.NullFloat64{Float64: 200 + rand.Float64()*1500, Valid: true},
		})
		if err != nil {
			log.Fatalf("Failed to insert shipment: %v", err)
		}
	}

	fmt.Printf("Seeded %d customers, %d margin rows, %d shipments, 1 carrier group\n",
		numCustomers, marginRows, numShipments)
}

func formatThousands(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d,%03d", n/1000, n%1000)
}
