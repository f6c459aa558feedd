package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/repository"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSeedIsIdempotent(t *testing.T) {
	utils.SilenceLoggers()
	db, err := gorm.Open(sqlite.Open("file:seed?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	fixture, err := LoadFixture("")
	require.NoError(t, err)
	require.NotEmpty(t, fixture.Tables)
	require.NotEmpty(t, fixture.Staff)

	// one staff member is enough here
	fixture.Staff = fixture.Staff[:1]

	floor := services.NewFloor(repository.NewRepository(db), services.FloorOptions{})
	ctx := context.Background()
	require.NoError(t, Seed(ctx, db, floor.Tables, fixture))
	require.NoError(t, Seed(ctx, db, floor.Tables, fixture))

	tables, err := floor.Tables.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, tables, len(fixture.Tables))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte(fixture.Staff[0].Password)))
}

func TestLoadFixtureMissingFile(t *testing.T) {
	_, err := LoadFixture("does/not/exist.json")
	assert.Error(t, err)
}
