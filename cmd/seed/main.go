package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/go-ddd-ecommerce/config"
	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/entity"
	"github.com/oksasatya/go-ddd-ecommerce/internal/infrastructure/mongodb"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	client, err := mongodb.NewClient(ctx, cfg.MongoURI, uint64(cfg.MongoMaxPoolSize), uint64(cfg.MongoMinPoolSize), cfg.MongoConnectTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDatabase)

	user := &entity.User{
		UserName: "demoUser",
		Password: "password123",
		Email:    "demo@example.com",
		Address:  &entity.Address{Street: "Rua das Flores 10", City: "Lisboa", State: "LX", ZipCode: "1000-001"},
	}
	if err := mongodb.NewUserRepository(db).Create(ctx, user); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s userName=%s password=%s\n", user.ID, user.UserName, user.Password)

	products := mongodb.NewProductRepository(db)
	for _, p := range []*entity.Product{
		{ProductName: "Wireless Mouse", ProductPreco: decimal.RequireFromString("19.99"), ProductDescription: "2.4GHz, USB receiver", ProductType: "peripheral"},
		{ProductName: "Mechanical Keyboard", ProductPreco: decimal.RequireFromString("89.90"), ProductDescription: "Brown switches", ProductType: "peripheral"},
	} {
		if err := products.Create(ctx, p); err != nil {
			log.Fatalf("failed to seed product %q: %v", p.ProductName, err)
		}
		fmt.Printf("seeded product: id=%s name=%s price=%s\n", p.ID, p.ProductName, p.ProductPreco)
	}
}
