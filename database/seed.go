package database

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:embed fixtures/floor.json
var defaultFixture []byte

type StaffFixture struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Fixture struct {
	Staff  []StaffFixture       `json:"staff"`
	Tables []services.TableInput `json:"tables"`
}

// LoadFixture reads path, or the embedded floor plan when path is empty.
func LoadFixture(path string) (*Fixture, error) {
	raw := defaultFixture
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixture: %w", err)
		}
		raw = b
	}

	var f Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Seed inserts staff that do not exist yet, and the fixture tables when the
// floor has no active table. Running it twice changes nothing.
func Seed(ctx context.Context, db *gorm.DB, tables *services.TableRegistry, f *Fixture) error {
	for _, s := range f.Staff {
		if err := seedStaff(ctx, db, s); err != nil {
			return err
		}
	}

	active, err := tables.ListActive(ctx)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		utils.InfoLogger.WithField("tables", len(active)).Info("floor already set up, skipping table seed")
		return nil
	}
	for _, in := range f.Tables {
		if _, err := tables.AddTable(ctx, in); err != nil {
			return fmt.Errorf("seed table %d: %w", in.Number, err)
		}
	}
	utils.InfoLogger.WithField("tables", len(f.Tables)).Info("floor seeded")
	return nil
}

func seedStaff(ctx context.Context, db *gorm.DB, s StaffFixture) error {
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", s.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup staff %s: %w", s.Email, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", s.Email, err)
	}
	user := models.User{
		Name:     s.Name,
		Email:    s.Email,
		Password: string(hashed),
		Role:     s.Role,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("create staff %s: %w", s.Email, err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"email": user.Email,
		"role":  user.Role,
	}).Info("staff seeded")
	return nil
}
