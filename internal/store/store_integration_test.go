package store_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"bodyshop-manager/internal/core"
	"bodyshop-manager/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean test DB
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE orders, collaborators, order_sequences, users CASCADE;
	`)
	if err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}

	return pool
}

func seedTestUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	users := store.NewUserStore(pool)
	u, err := users.Create(context.Background(), "shop@test.local", "Test Shop", "not-a-real-hash")
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u.ID
}

func TestOrderStore_RoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	userID := seedTestUser(t, pool)
	orders := store.NewOrderStore(pool)

	o := core.NewServiceOrder(
		"OS-2026-0001", "2026-08-01", "2026-08-15",
		core.Client{Name: "Carlos Silva", Phone: "11 99999-0001"},
		core.Vehicle{Plate: "ABC1D23", Brand: "Fiat", Model: "Argo", Year: 2021, Color: "Prata"},
		"Rear bumper repaint", "Marcos",
		decimal.NewFromInt(1500),
	)
	o.AddPart(core.Part{
		ID: "p1", Name: "Bumper clip kit", Type: core.PartTypePart,
		Quantity: 2, UnitSalePrice: decimal.NewFromInt(40), UnitCost: decimal.NewFromInt(25),
		Status: core.PartRequested,
	})
	o.AddLaborAllocation(core.LaborAllocation{
		ID: "l1", CollaboratorID: "c1", WorkerName: "Paula", Role: string(core.RolePintor),
		Cost: decimal.NewFromInt(300), Date: "2026-08-03",
	})

	if err := orders.Insert(ctx, userID, o); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := orders.ListForUser(ctx, userID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 order, got %d", len(got))
	}
	loaded := got[0]
	if loaded.ID != o.ID {
		t.Errorf("expected id %s, got %s", o.ID, loaded.ID)
	}
	if !loaded.FinalPrice.Equal(decimal.NewFromInt(1580)) {
		t.Errorf("expected final price 1580 after round trip, got %s", loaded.FinalPrice)
	}
	if len(loaded.Parts) != 1 || len(loaded.LaborAllocations) != 1 {
		t.Errorf("expected 1 part and 1 allocation, got %d and %d",
			len(loaded.Parts), len(loaded.LaborAllocations))
	}
	if loaded.Vehicle.Description() != "Fiat Argo (ABC1D23)" {
		t.Errorf("unexpected vehicle description %q", loaded.Vehicle.Description())
	}

	// Update replaces the whole blob.
	loaded.SetStatus(core.StatusPaint)
	if err := orders.Update(ctx, userID, loaded); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err = orders.ListForUser(ctx, userID)
	if err != nil {
		t.Fatalf("list after update failed: %v", err)
	}
	if got[0].Status != core.StatusPaint {
		t.Errorf("expected status %s after update, got %s", core.StatusPaint, got[0].Status)
	}

	// Updating an unknown id is a silent no-op.
	ghost := core.NewServiceOrder("OS-2026-9999", "2026-08-01", "",
		core.Client{Name: "Nobody"}, core.Vehicle{Plate: "ZZZ0Z00"}, "", "", decimal.Zero)
	if err := orders.Update(ctx, userID, ghost); err != nil {
		t.Fatalf("update of missing order should not error: %v", err)
	}

	if err := orders.Delete(ctx, userID, o.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, err = orders.ListForUser(ctx, userID)
	if err != nil {
		t.Fatalf("list after delete failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected 0 orders after delete, got %d", len(got))
	}
}

func TestOrderStore_ListIsScopedToUser(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	users := store.NewUserStore(pool)
	u1, err := users.Create(ctx, "one@test.local", "Shop One", "hash")
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	u2, err := users.Create(ctx, "two@test.local", "Shop Two", "hash")
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	orders := store.NewOrderStore(pool)
	o := core.NewServiceOrder("OS-2026-0001", "2026-08-01", "",
		core.Client{Name: "Carlos"}, core.Vehicle{Plate: "ABC1D23"}, "", "", decimal.NewFromInt(100))
	if err := orders.Insert(ctx, u1.ID, o); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := orders.ListForUser(ctx, u2.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected other user to see 0 orders, got %d", len(got))
	}
}

func TestOrderStore_ConcurrentNextOrderID(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	userID := seedTestUser(t, pool)
	orders := store.NewOrderStore(pool)

	const n = 10
	var wg sync.WaitGroup
	idCh := make(chan string, n)
	errCh := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := orders.NextOrderID(ctx, userID, 2026)
			if err != nil {
				errCh <- err
				return
			}
			idCh <- id
		}()
	}

	wg.Wait()
	close(idCh)
	close(errCh)

	for err := range errCh {
		t.Errorf("concurrent sequence error: %v", err)
	}

	seen := make(map[string]bool)
	for id := range idCh {
		if seen[id] {
			t.Errorf("duplicate order id assigned: %s", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d unique order ids, got %d", n, len(seen))
	}

	// Sequence continues gaplessly after the burst.
	next, err := orders.NextOrderID(ctx, userID, 2026)
	if err != nil {
		t.Fatalf("failed to advance sequence: %v", err)
	}
	if next != fmt.Sprintf("OS-2026-%04d", n+1) {
		t.Errorf("expected OS-2026-%04d, got %s", n+1, next)
	}
}

func TestCollaboratorStore_RoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	userID := seedTestUser(t, pool)
	collaborators := store.NewCollaboratorStore(pool)

	c := &core.Collaborator{
		ID: "c1", Name: "Paula Mendes", Role: core.RolePintor,
		Phone: "11 98888-0002", Status: core.CollaboratorActive,
	}
	if err := collaborators.Insert(ctx, userID, c); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := collaborators.ListForUser(ctx, userID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Paula Mendes" {
		t.Fatalf("unexpected list result: %+v", got)
	}

	got[0].Status = core.CollaboratorInactive
	if err := collaborators.Update(ctx, userID, got[0]); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err = collaborators.ListForUser(ctx, userID)
	if err != nil {
		t.Fatalf("list after update failed: %v", err)
	}
	if got[0].Status != core.CollaboratorInactive {
		t.Errorf("expected inactive status after update, got %s", got[0].Status)
	}

	if err := collaborators.Delete(ctx, userID, "c1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestUserStore_LookupAbsence(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	users := store.NewUserStore(pool)

	u, err := users.GetByEmail(ctx, "missing@test.local")
	if err != nil {
		t.Fatalf("lookup of missing user should not error: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}

	created, err := users.Create(ctx, "owner@test.local", "Owner", "hash")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	found, err := users.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("lookup by id failed: %v", err)
	}
	if found == nil || found.Email != "owner@test.local" {
		t.Errorf("unexpected lookup result: %+v", found)
	}
}
