package store

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/security"
	"stockbook/internal/core/types"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Users []struct {
		ID       string        `yaml:"id"`
		Name     string        `yaml:"name"`
		Role     security.Role `yaml:"role"`
		Password string        `yaml:"password"`
	} `yaml:"users"`
	Products []struct {
		ID           string `yaml:"id"`
		Name         string `yaml:"name"`
		Category     string `yaml:"category"`
		PiecesPerBox int64  `yaml:"piecesPerBox"`
		BasePrice    string `yaml:"basePrice"`
	} `yaml:"products"`
	Inventory map[string]int64 `yaml:"inventory"`
}

type seedOptions struct {
	data         []byte
	passwordCost int
}

// SeedOption customizes Seed.
type SeedOption func(*seedOptions)

// WithPasswordCost sets the bcrypt cost used for demo passwords.
func WithPasswordCost(cost int) SeedOption {
	return func(o *seedOptions) { o.passwordCost = cost }
}

// WithSeedData replaces the embedded demo data.
func WithSeedData(data []byte) SeedOption {
	return func(o *seedOptions) { o.data = data }
}

// Seed returns a Seeder that builds the demo document. Opening stock is
// recorded as ADJUST movements by the system actor so the movement log
// explains every unit on hand.
func Seed(ids id.Source, opts ...SeedOption) Seeder {
	o := seedOptions{data: seedYAML, passwordCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(&o)
	}

	return func(ctx context.Context) (*Document, error) {
		var f seedFile
		if err := yaml.Unmarshal(o.data, &f); err != nil {
			return nil, fmt.Errorf("parse seed data: %w", err)
		}

		doc := New()

		for _, u := range f.Users {
			if !u.Role.Valid() {
				return nil, fmt.Errorf("seed user %s: unknown role %q", u.ID, u.Role)
			}
			user := entity.User{ID: u.ID, Name: u.Name, Role: u.Role}
			if u.Password != "" {
				hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), o.passwordCost)
				if err != nil {
					return nil, fmt.Errorf("hash password for %s: %w", u.ID, err)
				}
				user.PasswordHash = string(hash)
			}
			doc.Users = append(doc.Users, user)
		}

		for _, p := range f.Products {
			price, err := types.NewMoneyFromString(p.BasePrice)
			if err != nil {
				return nil, fmt.Errorf("seed product %s: base price: %w", p.ID, err)
			}
			product := entity.Product{
				ID:           p.ID,
				Name:         p.Name,
				Category:     p.Category,
				PiecesPerBox: p.PiecesPerBox,
				BasePrice:    price,
			}
			if err := product.Validate(ctx); err != nil {
				return nil, fmt.Errorf("seed product %s: %w", p.ID, err)
			}
			doc.Products = append(doc.Products, product)
		}

		// Map order is random; sort so movement ids follow catalog order.
		productIDs := make([]string, 0, len(f.Inventory))
		for pid := range f.Inventory {
			productIDs = append(productIDs, pid)
		}
		slices.Sort(productIDs)

		now := ids.Now()
		for _, pid := range productIDs {
			qty := max(0, f.Inventory[pid])
			if _, ok := doc.Product(pid); !ok {
				return nil, fmt.Errorf("seed inventory: unknown product %s", pid)
			}
			doc.Inventory[pid] = qty
			if qty == 0 {
				continue
			}
			doc.Movements = append(doc.Movements, entity.Movement{
				ID:        ids.NewID(),
				At:        now,
				ActorID:   security.System.ID,
				Type:      entity.MovementAdjust,
				ProductID: pid,
				Quantity:  qty,
				RefType:   entity.RefSeed,
				Note:      "+" + strconv.FormatInt(qty, 10) + ": opening stock",
			})
		}

		doc.Audit = append(doc.Audit, entity.AuditEntry{
			ID:      ids.NewID(),
			At:      now,
			ActorID: security.System.ID,
			Action:  "store.seed",
			Message: fmt.Sprintf("Seeded %d products and %d users", len(doc.Products), len(doc.Users)),
		})

		return doc, nil
	}
}
