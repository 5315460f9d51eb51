package listview

import (
	"fmt"
	"testing"

	"github.com/helpdesk-tools/inventory/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func machine(id int64, name string, opts ...func(*domain.Machine)) domain.Machine {
	m := domain.Machine{
		ID:        id,
		Name:      name,
		MachineID: id,
		Category:  domain.CategoryMachine,
		Status:    domain.StatusAvailable,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func withUser(user string) func(*domain.Machine) {
	return func(m *domain.Machine) { m.User = strp(user) }
}

func withStatus(status string) func(*domain.Machine) {
	return func(m *domain.Machine) { m.Status = status }
}

func withLocation(location string) func(*domain.Machine) {
	return func(m *domain.Machine) { m.Location = strp(location) }
}

func fleet(n int) []domain.Machine {
	machines := make([]domain.Machine, 0, n)
	for i := 1; i <= n; i++ {
		machines = append(machines, machine(int64(i), fmt.Sprintf("PC %d", i)))
	}
	return machines
}

func TestSearch_ByName(t *testing.T) {
	v := New([]domain.Machine{
		machine(1, "PC Suporte"),
		machine(2, "Notebook RH"),
	})

	v.SetSearch("suporte")
	matched := v.Matches()
	require.Len(t, matched, 1)
	assert.Equal(t, "PC Suporte", matched[0].Name)
}

func TestSearch_ByPaddedMachineID(t *testing.T) {
	v := New([]domain.Machine{
		machine(7, "PC Suporte"),
		machine(70, "Notebook RH"),
	})

	v.SetSearch("007")
	matched := v.Matches()
	require.Len(t, matched, 1)
	assert.Equal(t, int64(7), matched[0].MachineID)
}

func TestSearch_ByUser(t *testing.T) {
	v := New([]domain.Machine{
		machine(1, "PC 1", withUser("Maria Silva")),
		machine(2, "PC 2", withUser("João")),
	})

	v.SetSearch("MARIA")
	matched := v.Matches()
	require.Len(t, matched, 1)
	assert.Equal(t, int64(1), matched[0].ID)
}

func TestSearch_NilUserDoesNotMatch(t *testing.T) {
	v := New([]domain.Machine{machine(1, "PC 1")})

	v.SetSearch("maria")
	assert.Empty(t, v.Matches())
}

func TestFilters_ExactMatch(t *testing.T) {
	v := New([]domain.Machine{
		machine(1, "PC 1", withStatus(domain.StatusInUse), withLocation("RH")),
		machine(2, "PC 2", withStatus(domain.StatusAvailable), withLocation("RH")),
		machine(3, "PC 3", withStatus(domain.StatusInUse)),
	})

	v.SetFilters(Filters{Status: domain.StatusInUse, Location: "RH"})
	matched := v.Matches()
	require.Len(t, matched, 1)
	assert.Equal(t, int64(1), matched[0].ID)
}

func TestFilters_IntersectWithSearch(t *testing.T) {
	v := New([]domain.Machine{
		machine(1, "PC Suporte", withStatus(domain.StatusInUse)),
		machine(2, "PC Suporte 2", withStatus(domain.StatusAvailable)),
	})

	v.SetFilters(Filters{Search: "suporte", Status: domain.StatusAvailable})
	matched := v.Matches()
	require.Len(t, matched, 1)
	assert.Equal(t, int64(2), matched[0].ID)
}

func TestPagination_PageSizeAndLastPage(t *testing.T) {
	v := New(fleet(25))

	assert.Equal(t, 3, v.TotalPages())
	assert.Len(t, v.Visible(), 10)

	v.SetPage(3)
	last := v.Visible()
	assert.Len(t, last, 5)
	assert.Equal(t, int64(21), last[0].ID)
}

func TestPagination_ClampsOutOfRange(t *testing.T) {
	v := New(fleet(25))

	v.SetPage(99)
	assert.Equal(t, 3, v.Page())
	assert.Len(t, v.Visible(), 5)

	v.SetPage(-1)
	assert.Equal(t, 1, v.Page())
}

func TestPagination_FilterChangeResetsPage(t *testing.T) {
	v := New(fleet(25))

	v.SetPage(3)
	require.Equal(t, 3, v.Page())

	v.SetSearch("pc")
	assert.Equal(t, 1, v.Page())
}

func TestPagination_SameFiltersKeepPage(t *testing.T) {
	v := New(fleet(25))

	v.SetSearch("pc")
	v.SetPage(2)
	v.SetSearch("pc")
	assert.Equal(t, 2, v.Page())
}

func TestPagination_SourceChangeResetsPage(t *testing.T) {
	v := New(fleet(25))

	v.SetPage(2)
	v.SetSource(fleet(12))
	assert.Equal(t, 1, v.Page())
	assert.Equal(t, 2, v.TotalPages())
}

func TestPagination_EmptyResultHasOnePage(t *testing.T) {
	v := New(nil)

	assert.Equal(t, 1, v.TotalPages())
	assert.Equal(t, 1, v.Page())
	assert.Empty(t, v.Visible())
}

func TestCustomPageSize(t *testing.T) {
	v := NewWithPageSize(fleet(7), 3)

	assert.Equal(t, 3, v.TotalPages())
	v.SetPage(3)
	assert.Len(t, v.Visible(), 1)
}
