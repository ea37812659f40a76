package database

import (
	"testing"

	"equiprent/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLite(t *testing.T) {
	db, err := Connect("file::memory:?cache=shared")
	require.NoError(t, err)
	require.NotNil(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := Connect("file::memory:?cache=shared")
	require.NoError(t, err)

	err = Migrate(db,
		&repository.UserModel{},
		&repository.EquipmentModel{},
		&repository.BookingModel{},
		&repository.NotificationModel{},
	)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("bookings"))
}
