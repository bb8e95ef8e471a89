// seed puebla una base de datos vacía con datos iniciales de El Lector:
// el depósito central, dos librerías, un usuario por local y un catálogo
// mínimo de títulos. Es idempotente: los locales se buscan por slug y los
// usuarios por email antes de crear.
//
// Uso: go run ./cmd/seed (lee la misma configuración que cmd/api)
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/el-lector/libreria-api/internal/application/auth"
	"github.com/el-lector/libreria-api/internal/application/dto"
	"github.com/el-lector/libreria-api/internal/application/usecase"
	"github.com/el-lector/libreria-api/internal/domain/entity"
	"github.com/el-lector/libreria-api/internal/infrastructure/postgres"
	"github.com/el-lector/libreria-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	locationRepo := postgres.NewLocationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	locationUC := usecase.NewLocationUseCase(locationRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	authUC := auth.NewAuthUseCase(userRepo, locationRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Locales: depósito central + dos librerías
	locations := []dto.CreateLocationRequest{
		{Name: "Depósito Central", Slug: "deposito-central", Kind: entity.LocationKindDeposito, Address: "Parque industrial, nave 4"},
		{Name: "El Lector Centro", Slug: "centro", Kind: entity.LocationKindLibreria, Address: "Av. Principal 120"},
		{Name: "El Lector Norte", Slug: "norte", Kind: entity.LocationKindLibreria, Address: "C.C. Plaza Norte, local 23"},
	}
	locationIDs := make(map[string]string, len(locations))
	for _, in := range locations {
		existing, err := locationUC.GetBySlug(in.Slug)
		if err != nil {
			fail("buscar local %s: %v", in.Slug, err)
		}
		if existing != nil {
			locationIDs[in.Slug] = existing.ID
			fmt.Printf("local %-18s ya existe (%s)\n", in.Slug, existing.ID)
			continue
		}
		created, err := locationUC.Create(in)
		if err != nil {
			fail("crear local %s: %v", in.Slug, err)
		}
		locationIDs[in.Slug] = created.ID
		fmt.Printf("local %-18s creado (%s)\n", in.Slug, created.ID)
	}

	// Un usuario por local. Cambiar las contraseñas tras el primer login.
	users := []struct {
		slug string
		in   dto.RegisterRequest
	}{
		{"deposito-central", dto.RegisterRequest{Email: "admin@el-lector.local", Password: "cambiar-ya-01", Name: "Administración", Role: entity.RoleAdmin}},
		{"deposito-central", dto.RegisterRequest{Email: "deposito@el-lector.local", Password: "cambiar-ya-02", Name: "Bodega Central", Role: entity.RoleBodeguero}},
		{"centro", dto.RegisterRequest{Email: "centro@el-lector.local", Password: "cambiar-ya-03", Name: "Sucursal Centro", Role: entity.RoleVendedor}},
		{"norte", dto.RegisterRequest{Email: "norte@el-lector.local", Password: "cambiar-ya-04", Name: "Sucursal Norte", Role: entity.RoleVendedor}},
	}
	for _, u := range users {
		existing, err := userRepo.FindByEmail(u.in.Email)
		if err != nil {
			fail("buscar usuario %s: %v", u.in.Email, err)
		}
		if existing != nil {
			fmt.Printf("usuario %-28s ya existe\n", u.in.Email)
			continue
		}
		u.in.LocationID = locationIDs[u.slug]
		if _, err := authUC.RegisterUser(u.in); err != nil {
			fail("crear usuario %s: %v", u.in.Email, err)
		}
		fmt.Printf("usuario %-28s creado\n", u.in.Email)
	}

	// Catálogo mínimo para poder despachar traslados de prueba.
	titles := []dto.CreateProductRequest{
		{SKU: "978-84-376-0494-7", Title: "Cien años de soledad", Author: "Gabriel García Márquez", Publisher: "Cátedra", Price: decimal.NewFromFloat(18.00)},
		{SKU: "978-84-204-8304-8", Title: "La ciudad y los perros", Author: "Mario Vargas Llosa", Publisher: "Alfaguara", Price: decimal.NewFromFloat(15.50)},
		{SKU: "978-84-663-3843-4", Title: "Ficciones", Author: "Jorge Luis Borges", Publisher: "Debolsillo", Price: decimal.NewFromFloat(12.90)},
	}
	for _, in := range titles {
		if _, err := productUC.Create(in); err != nil {
			// SKU duplicado en una nueva corrida: se ignora
			fmt.Printf("título %-24s omitido: %v\n", in.SKU, err)
			continue
		}
		fmt.Printf("título %-24s creado\n", in.SKU)
	}

	fmt.Println("seed completado")
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
