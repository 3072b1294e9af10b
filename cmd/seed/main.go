package main

import (
	"log"
	"os"
	"time"

	"fixzit-be/internal/model"
	"fixzit-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

// Seeds two demo organizations with properties, work orders and invoices.
// Re-running is safe: rows are keyed by fixed UUIDs and upserted via Save.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding demo data...")

	acmeOrg := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	globexOrg := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	orgs := []model.Organization{
		{Id: acmeOrg, Name: "Acme Facilities", Slug: "acme-facilities", Status: "active"},
		{Id: globexOrg, Name: "Globex Property Group", Slug: "globex-property", Status: "active"},
	}
	for i := range orgs {
		if err := db.Save(&orgs[i]).Error; err != nil {
			log.Fatalf("Error: Failed to seed organization: %v", err)
		}
	}

	towerLat, towerLng := 24.7136, 46.6753 // Riyadh
	mallLat, mallLng := 21.4858, 39.1925   // Jeddah

	acmeTower := uuid.MustParse("aaaaaaa1-0000-0000-0000-000000000001")
	acmeMall := uuid.MustParse("aaaaaaa1-0000-0000-0000-000000000002")
	globexPark := uuid.MustParse("bbbbbbb2-0000-0000-0000-000000000001")

	properties := []model.Property{
		{
			Id: acmeTower, OrgId: acmeOrg,
			Name: "Acme HQ Tower", Address: "King Fahd Road, Riyadh",
			PropertyType: "commercial", TotalUnits: 40,
			LocationLat: &towerLat, LocationLng: &towerLng,
		},
		{
			Id: acmeMall, OrgId: acmeOrg,
			Name: "Acme Seaside Mall", Address: "Corniche Road, Jeddah",
			PropertyType: "commercial", TotalUnits: 120,
			LocationLat: &mallLat, LocationLng: &mallLng,
		},
		{
			Id: globexPark, OrgId: globexOrg,
			Name: "Globex Residential Park", Address: "Olaya Street, Riyadh",
			PropertyType: "residential", TotalUnits: 200,
			LocationLat: &towerLat, LocationLng: &towerLng,
		},
	}
	for i := range properties {
		if err := db.Save(&properties[i]).Error; err != nil {
			log.Fatalf("Error: Failed to seed property: %v", err)
		}
	}

	leakWO := uuid.MustParse("cccccccc-0000-0000-0000-000000000001")
	hvacWO := uuid.MustParse("cccccccc-0000-0000-0000-000000000002")
	elevatorWO := uuid.MustParse("cccccccc-0000-0000-0000-000000000003")
	globexWO := uuid.MustParse("dddddddd-0000-0000-0000-000000000001")

	workOrders := []model.WorkOrder{
		{
			Id: leakWO, OrgId: acmeOrg, PropertyId: acmeTower,
			UnitNumber: "12A", Title: "Water leak under kitchen sink",
			Description: "Tenant reports persistent dripping and a damp cabinet floor.",
			Category:    "plumbing", Priority: "high", Status: "open",
			Metadata: datatypes.JSON([]byte(`{"reported_by": "tenant", "floor": 12}`)),
		},
		{
			Id: hvacWO, OrgId: acmeOrg, PropertyId: acmeTower,
			UnitNumber: "7C", Title: "AC not cooling in server room",
			Description: "Temperature alarm triggered twice overnight, compressor suspected.",
			Category:    "hvac", Priority: "urgent", Status: "in_progress",
			Metadata: datatypes.JSON([]byte(`{"reported_by": "facilities", "floor": 7}`)),
		},
		{
			Id: elevatorWO, OrgId: acmeOrg, PropertyId: acmeMall,
			Title:       "Elevator B stuck between floors",
			Description: "North wing service elevator stopped responding, no passengers inside.",
			Category:    "general", Priority: "urgent", Status: "resolved",
		},
		{
			Id: globexWO, OrgId: globexOrg, PropertyId: globexPark,
			UnitNumber: "B-204", Title: "Broken corridor light",
			Description: "Flickering fluorescent tube in block B second floor corridor.",
			Category:    "electrical", Priority: "low", Status: "open",
		},
	}
	for i := range workOrders {
		if err := db.Save(&workOrders[i]).Error; err != nil {
			log.Fatalf("Error: Failed to seed work order: %v", err)
		}
	}

	now := time.Now()
	paidAt := now.AddDate(0, 0, -3)

	invoices := []model.Invoice{
		{
			Id:            uuid.MustParse("eeeeeeee-0000-0000-0000-000000000001"),
			OrgId:         acmeOrg,
			InvoiceNumber: "INV-SEED-0001",
			WorkOrderId:   &elevatorWO,
			Amount:        4800.00, Currency: "SAR",
			Status:   "paid",
			IssuedAt: now.AddDate(0, 0, -10), PaidAt: &paidAt,
		},
		{
			Id:            uuid.MustParse("eeeeeeee-0000-0000-0000-000000000002"),
			OrgId:         acmeOrg,
			InvoiceNumber: "INV-SEED-0002",
			WorkOrderId:   &hvacWO,
			Amount:        12500.00, Currency: "SAR",
			Status:   "issued",
			IssuedAt: now.AddDate(0, 0, -1),
		},
		{
			Id:            uuid.MustParse("eeeeeeee-0000-0000-0000-000000000003"),
			OrgId:         globexOrg,
			InvoiceNumber: "INV-SEED-0003",
			Amount:        350.00, Currency: "SAR",
			Status:   "issued",
			IssuedAt: now,
		},
	}
	for i := range invoices {
		if err := db.Save(&invoices[i]).Error; err != nil {
			log.Fatalf("Error: Failed to seed invoice: %v", err)
		}
	}

	log.Println("✅ Success: Seeded", len(orgs), "orgs,", len(properties), "properties,", len(workOrders), "work orders,", len(invoices), "invoices.")
}
