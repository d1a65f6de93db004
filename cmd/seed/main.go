// seed is a one-shot tool that provisions a demo user with a small set of
// collaborators and one open service order. Safe to re-run: it exits when
// the user already exists.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"bodyshop-manager/internal/core"
	"bodyshop-manager/internal/db"
	"bodyshop-manager/internal/store"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	email := os.Getenv("SEED_EMAIL")
	if email == "" {
		email = "demo@oficina.local"
	}
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "demo1234"
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	users := store.NewUserStore(pool)
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("Failed to check user: %v", err)
	}
	if existing != nil {
		log.Printf("User %s already exists, nothing to do.", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	user, err := users.Create(ctx, email, "Oficina Demo", string(hash))
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	log.Printf("Created user %s (%s)", user.Email, user.ID)

	collaborators := store.NewCollaboratorStore(pool)
	team := []*core.Collaborator{
		{ID: "col-jorge", Name: "Jorge Lima", Role: core.RoleFunileiro, Status: core.CollaboratorActive},
		{ID: "col-paula", Name: "Paula Mendes", Role: core.RolePintor, Status: core.CollaboratorActive},
		{ID: "col-rafa", Name: "Rafael Souza", Role: core.RoleMontador, Status: core.CollaboratorActive},
	}
	for _, c := range team {
		if err := collaborators.Insert(ctx, user.ID, c); err != nil {
			log.Fatalf("Failed to seed collaborator %s: %v", c.Name, err)
		}
	}
	log.Printf("Seeded %d collaborators", len(team))

	orders := store.NewOrderStore(pool)
	entryDate := core.Today()
	year, _ := core.YearOf(entryDate)
	id, err := orders.NextOrderID(ctx, user.ID, year)
	if err != nil {
		log.Fatalf("Failed to assign order id: %v", err)
	}

	o := core.NewServiceOrder(id, entryDate, "",
		core.Client{ID: "cli-demo", Name: "Carlos Silva", Phone: "11 99999-0001"},
		core.Vehicle{Plate: "ABC1D23", Brand: "Fiat", Model: "Argo", Color: "Prata", Year: 2021},
		"Lateral esquerda amassada, repintura de duas portas", "Jorge Lima",
		decimal.NewFromInt(1800))
	o.AddPart(core.Part{
		ID: "part-demo-1", Name: "Maçaneta externa", Type: core.PartTypePart,
		Quantity: 1, UnitSalePrice: decimal.NewFromInt(180), UnitCost: decimal.NewFromInt(110),
		Status: core.PartRequested, Supplier: "AutoPeças Center",
	})
	o.AddLaborAllocation(core.LaborAllocation{
		ID: "alloc-demo-1", CollaboratorID: "col-jorge", WorkerName: "Jorge Lima",
		Role: string(core.RoleFunileiro), Cost: decimal.NewFromInt(400), Date: entryDate,
	})
	if err := orders.Insert(ctx, user.ID, o); err != nil {
		log.Fatalf("Failed to seed order: %v", err)
	}
	log.Printf("Seeded order %s", o.ID)
}
