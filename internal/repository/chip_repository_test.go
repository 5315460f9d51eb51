package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/helpdesk-tools/inventory/internal/domain"
	"github.com/helpdesk-tools/inventory/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChip() domain.Chip {
	return domain.Chip{
		IP:         "42",
		Number:     "5579999990001",
		Carrier:    "Vivo",
		Consultant: "Carlos",
		Status:     "Ativo",
	}
}

func TestChipRepository_SaveAndFind(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestChipRepository_SaveAndFind")
	defer cleanup()

	repo := NewChipRepository(db)

	saved, err := repo.Save(context.Background(), testChip())
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.NotEmpty(t, saved.CreatedAt)

	found, err := repo.FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "42", found.IP)
}

func TestChipRepository_Validation(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestChipRepository_Validation")
	defer cleanup()

	repo := NewChipRepository(db)

	cases := []struct {
		name   string
		mutate func(*domain.Chip)
	}{
		{"ip empty", func(c *domain.Chip) { c.IP = "" }},
		{"ip too long", func(c *domain.Chip) { c.IP = "1234" }},
		{"ip not digits", func(c *domain.Chip) { c.IP = "12a" }},
		{"number missing", func(c *domain.Chip) { c.Number = "" }},
		{"carrier unknown", func(c *domain.Chip) { c.Carrier = "Embratel" }},
		{"consultant missing", func(c *domain.Chip) { c.Consultant = "  " }},
		{"status unknown", func(c *domain.Chip) { c.Status = "Quebrado" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chip := testChip()
			tc.mutate(&chip)
			_, err := repo.Save(context.Background(), chip)
			assert.True(t, errors.Is(err, ErrInvalidEntity))
		})
	}
}

func TestChipRepository_UpdateAndDelete(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, "TestChipRepository_UpdateAndDelete")
	defer cleanup()

	repo := NewChipRepository(db)

	saved, err := repo.Save(context.Background(), testChip())
	require.NoError(t, err)

	saved.Status = "Banido"
	updated, err := repo.Save(context.Background(), saved)
	require.NoError(t, err)
	assert.Equal(t, "Banido", updated.Status)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)

	require.NoError(t, repo.DeleteByID(context.Background(), saved.ID))
	_, err = repo.FindByID(context.Background(), saved.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
