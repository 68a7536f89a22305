// labstockctl: utilidades administrativas de labstock (seed de datos demo).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/labstock-api/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "labstockctl",
	Short: "Utilidades administrativas de labstock",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carga perfiles y productos demo en la base de datos",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()

		profiles := postgres.NewProfileRepository(pool)
		products := postgres.NewProductRepository(pool)

		now := time.Now()
		hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		wholesaler := &entity.Profile{
			ID: uuid.New().String(), Email: "mayorista@demo.local", PasswordHash: string(hash),
			BusinessName: "Distribuidora Central", Role: entity.RoleWholesale,
			Active: true, CreatedAt: now, UpdatedAt: now,
		}
		retailer := &entity.Profile{
			ID: uuid.New().String(), Email: "minorista@demo.local", PasswordHash: string(hash),
			BusinessName: "Farmacia del Barrio", Role: entity.RoleRetail,
			Active: true, CreatedAt: now, UpdatedAt: now,
		}
		for _, p := range []*entity.Profile{wholesaler, retailer} {
			if err := profiles.Create(p); err != nil {
				return fmt.Errorf("seed profile %s: %w", p.Email, err)
			}
		}

		demo := []*entity.Product{
			{
				Name: "Jeringa 5ml", Description: "Jeringa desechable estéril", Category: "Insumos",
				Stock: 500, MinStock: 50,
				PurchasePrice: decimal.NewFromFloat(0.15), SalePrice: decimal.NewFromFloat(0.40),
				Visibility: entity.VisibilityWholesale, OwnerID: wholesaler.ID,
			},
			{
				Name: "Guantes de nitrilo (caja x100)", Description: "Talla M, sin polvo", Category: "Insumos",
				Stock: 80, MinStock: 20,
				PurchasePrice: decimal.NewFromFloat(4.50), SalePrice: decimal.NewFromFloat(7.90),
				Visibility: entity.VisibilityRetail, OwnerID: retailer.ID,
			},
			{
				Name: "Alcohol 70% 1L", Description: "Antiséptico de uso general", Category: "Antisépticos",
				Stock: 120, MinStock: 30,
				PurchasePrice: decimal.NewFromFloat(1.20), SalePrice: decimal.NewFromFloat(2.50),
				Visibility: entity.VisibilityPublic, OwnerID: retailer.ID,
			},
		}
		for _, p := range demo {
			p.ID = uuid.New().String()
			p.Status = entity.StockStatus(p.Stock, p.MinStock)
			p.CreatedAt = now
			p.UpdatedAt = now
			if err := products.Create(p); err != nil {
				return fmt.Errorf("seed product %s: %w", p.Name, err)
			}
		}

		fmt.Printf("seed completado: %d perfiles, %d productos\n", 2, len(demo))
		return nil
	},
}

func main() {
	rootCmd.AddCommand(seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
