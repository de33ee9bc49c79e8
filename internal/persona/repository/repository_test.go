package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&PersonaRow{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func strPtr(v string) *string { return &v }

func TestFindByID(t *testing.T) {
	db := setupTestDB(t)
	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&PersonaRow{
		ID:          "p-1",
		FirstName:   strPtr("Ada"),
		LastName:    strPtr("Lovelace"),
		CountryCode: strPtr("GB"),
		BirthDate:   &birth,
	}).Error)

	repo := Provide(db)
	ctx := context.Background()

	p, err := repo.FindByID(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Ada", *p.FirstName)
	assert.Equal(t, "GB", *p.CountryCode)
	require.NotNil(t, p.BirthDate)
	assert.True(t, birth.Equal(*p.BirthDate))

	missing, err := repo.FindByID(ctx, "p-2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
