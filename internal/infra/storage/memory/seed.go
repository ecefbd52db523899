package memory

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// Seed начальные данные для локального запуска
type Seed struct {
	Users      []SeedUser     `toml:"users"`
	Businesses []SeedBusiness `toml:"businesses"`
	Products   []SeedProduct  `toml:"products"`
	Services   []SeedService  `toml:"services"`
}

type SeedUser struct {
	ID    int64  `toml:"id"`
	Name  string `toml:"name"`
	Email string `toml:"email"`
	Role  string `toml:"role"`
}

type SeedBusiness struct {
	ID          int64  `toml:"id"`
	Name        string `toml:"name"`
	Address     string `toml:"address"`
	Contact     string `toml:"contact"`
	Type        string `toml:"type"`
	TotalTables int    `toml:"total_tables"`
	OwnerID     int64  `toml:"owner_id"`
}

type SeedProduct struct {
	ID         int64    `toml:"id"`
	BusinessID int64    `toml:"business_id"`
	Name       string   `toml:"name"`
	Price      *float64 `toml:"price"`
	Kind       string   `toml:"kind"`
}

type SeedService struct {
	ID         int64    `toml:"id"`
	BusinessID int64    `toml:"business_id"`
	Name       string   `toml:"name"`
	Price      *float64 `toml:"price"`
	Duration   string   `toml:"duration"`
}

// LoadSeedFile читает файл начальных данных и загружает его в хранилище
func (s *Store) LoadSeedFile(path string) error {
	var seed Seed
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return fmt.Errorf("memory: decode seed file %s: %w", path, err)
	}
	return s.LoadSeed(seed)
}

// LoadSeed загружает начальные данные в хранилище
func (s *Store) LoadSeed(seed Seed) error {
	for _, u := range seed.Users {
		role := domain.Role(u.Role)
		if role != "" && role != domain.RoleUser && role != domain.RoleAdmin {
			return fmt.Errorf("memory: user %d: unknown role %q", u.ID, u.Role)
		}
		s.AddUser(domain.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: role})
	}

	for _, b := range seed.Businesses {
		businessType, ok := domain.ParseBookingType(b.Type)
		if !ok {
			return fmt.Errorf("memory: business %d: unknown type %q", b.ID, b.Type)
		}
		business := domain.Business{
			ID:          b.ID,
			Name:        b.Name,
			Address:     b.Address,
			Contact:     b.Contact,
			Type:        businessType,
			TotalTables: b.TotalTables,
		}
		if b.OwnerID != 0 {
			ownerID := b.OwnerID
			business.OwnerID = &ownerID
		}
		s.AddBusiness(business)
	}

	for _, p := range seed.Products {
		kind := domain.ProductKind(p.Kind)
		if kind != "" && kind != domain.ProductKindProduct && kind != domain.ProductKindService {
			return fmt.Errorf("memory: product %d: unknown kind %q", p.ID, p.Kind)
		}
		s.AddProduct(domain.Product{ID: p.ID, BusinessID: p.BusinessID, Name: p.Name, Price: p.Price, Kind: kind})
	}

	for _, sv := range seed.Services {
		s.AddService(domain.Service{ID: sv.ID, BusinessID: sv.BusinessID, Name: sv.Name, Price: sv.Price, Duration: sv.Duration})
	}

	return nil
}
