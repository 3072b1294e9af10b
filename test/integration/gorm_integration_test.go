package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"fixzit-be/internal/entity"
	"fixzit-be/internal/repository/specification"
	"fixzit-be/internal/repository/unitofwork"
	"fixzit-be/pkg/aggregate"
	"fixzit-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.OrganizationRepository())
	assert.NotNil(t, uow.PropertyRepository())
	assert.NotNil(t, uow.WorkOrderRepository())
	assert.NotNil(t, uow.InvoiceRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Work Order Repository", func(t *testing.T) {
		count, err := uow.WorkOrderRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Work order count: %d", count)
	})

	t.Run("Tenant Scoped Aggregation Round Trip", func(t *testing.T) {
		ctx := context.Background()

		orgA := &entity.Organization{
			Id:        uuid.New(),
			Name:      "Integration Org A",
			Slug:      "integration-a-" + uuid.NewString(),
			Status:    "active",
			CreatedAt: time.Now(),
		}
		orgB := &entity.Organization{
			Id:        uuid.New(),
			Name:      "Integration Org B",
			Slug:      "integration-b-" + uuid.NewString(),
			Status:    "active",
			CreatedAt: time.Now(),
		}
		assert.NoError(t, uow.OrganizationRepository().Create(ctx, orgA))
		assert.NoError(t, uow.OrganizationRepository().Create(ctx, orgB))

		propA := &entity.Property{
			Id:        uuid.New(),
			OrgId:     orgA.Id,
			Name:      "Integration Property A",
			CreatedAt: time.Now(),
		}
		propB := &entity.Property{
			Id:        uuid.New(),
			OrgId:     orgB.Id,
			Name:      "Integration Property B",
			CreatedAt: time.Now(),
		}
		assert.NoError(t, uow.PropertyRepository().Create(ctx, propA))
		assert.NoError(t, uow.PropertyRepository().Create(ctx, propB))

		for _, wo := range []*entity.WorkOrder{
			{Id: uuid.New(), OrgId: orgA.Id, PropertyId: propA.Id, Title: "A open ticket", Category: "general", Priority: entity.WorkOrderPriorityMedium, Status: entity.WorkOrderStatusOpen, CreatedAt: time.Now()},
			{Id: uuid.New(), OrgId: orgA.Id, PropertyId: propA.Id, Title: "A closed ticket", Category: "general", Priority: entity.WorkOrderPriorityLow, Status: entity.WorkOrderStatusClosed, CreatedAt: time.Now()},
			{Id: uuid.New(), OrgId: orgB.Id, PropertyId: propB.Id, Title: "B open ticket", Category: "general", Priority: entity.WorkOrderPriorityHigh, Status: entity.WorkOrderStatusOpen, CreatedAt: time.Now()},
		} {
			assert.NoError(t, uow.WorkOrderRepository().Create(ctx, wo))
		}

		// Grouping by status must only see org A rows.
		rows, err := uow.WorkOrderRepository().Aggregate(ctx, orgA.Id, aggregate.Pipeline{
			aggregate.NewStage(aggregate.StageGroup, aggregate.Doc{"by": "status", "count": true}),
		})
		assert.NoError(t, err)

		var total int64
		for _, row := range rows {
			switch n := row["count"].(type) {
			case int64:
				total += n
			case int:
				total += int64(n)
			}
		}
		assert.EqualValues(t, 2, total, "aggregation leaked rows across tenants")

		// A match on another org's id must still return only org A rows.
		rows, err = uow.WorkOrderRepository().Aggregate(ctx, orgA.Id, aggregate.Pipeline{
			aggregate.Match(aggregate.Doc{"org_id": orgB.Id}),
		})
		assert.NoError(t, err)
		assert.Len(t, rows, 2, "tenant filter was not authoritative")

		// The audited bypass sees both tenants.
		rows, err = uow.WorkOrderRepository().AggregateUnscoped(ctx,
			aggregate.BypassAudit{Actor: "integration-test", Reason: "cross tenant assertion"},
			aggregate.Pipeline{
				aggregate.Match(aggregate.Doc{"property_id": aggregate.Doc{"in": []any{propA.Id.String(), propB.Id.String()}}}),
			})
		assert.NoError(t, err)
		assert.Len(t, rows, 3)

		// Scoped find must not cross tenants either.
		found, err := uow.WorkOrderRepository().FindAll(ctx,
			specification.OrgScoped{OrgID: orgA.Id},
			specification.ByStatus{Status: entity.WorkOrderStatusOpen},
		)
		assert.NoError(t, err)
		assert.Len(t, found, 1)

		// Cleanup
		for _, row := range rows {
			if idStr, ok := row["id"].(string); ok {
				if id, err := uuid.Parse(idStr); err == nil {
					_ = uow.WorkOrderRepository().Delete(ctx, id)
				}
			}
		}
		_ = uow.PropertyRepository().Delete(ctx, propA.Id)
		_ = uow.PropertyRepository().Delete(ctx, propB.Id)
		_ = uow.OrganizationRepository().Delete(ctx, orgA.Id)
		_ = uow.OrganizationRepository().Delete(ctx, orgB.Id)
	})
}
