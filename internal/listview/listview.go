// Package listview computes the dashboard's visible page of machines. The
// API returns whole collections; searching, filtering, and pagination all
// happen on the loaded slice, mirroring what the dashboard does in memory.
package listview

import (
	"fmt"
	"strings"

	"github.com/helpdesk-tools/inventory/internal/domain"
)

// DefaultPageSize matches the dashboard's fixed page length.
const DefaultPageSize = 10

// Filters narrows a machine list. Search is a case-insensitive substring
// match over name, the zero-padded asset number, and the assigned user.
// The remaining fields are exact matches; empty string means "all".
type Filters struct {
	Search   string
	Status   string
	Category string
	Location string
}

// View holds the filter state plus the current page. Mutating any filter or
// replacing the source resets the page to 1.
type View struct {
	source   []domain.Machine
	filters  Filters
	page     int
	pageSize int
}

// New builds a view over machines with the default page size.
func New(machines []domain.Machine) *View {
	return NewWithPageSize(machines, DefaultPageSize)
}

// NewWithPageSize builds a view with an explicit page size. Sizes below 1
// fall back to the default.
func NewWithPageSize(machines []domain.Machine, pageSize int) *View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &View{source: machines, page: 1, pageSize: pageSize}
}

// SetSource replaces the underlying machine list, as after a refetch.
func (v *View) SetSource(machines []domain.Machine) {
	v.source = machines
	v.page = 1
}

// SetFilters replaces the filter state.
func (v *View) SetFilters(f Filters) {
	if v.filters == f {
		return
	}
	v.filters = f
	v.page = 1
}

// SetSearch updates only the search term.
func (v *View) SetSearch(term string) {
	f := v.filters
	f.Search = term
	v.SetFilters(f)
}

// SetPage moves to the given page. Out-of-range requests clamp to the first
// or last non-empty page.
func (v *View) SetPage(page int) {
	v.page = page
}

// Page reports the page currently displayed, after clamping.
func (v *View) Page() int {
	page, _ := v.clamp()
	return page
}

// TotalPages reports how many pages the filtered list spans. An empty result
// still has one (empty) page.
func (v *View) TotalPages() int {
	_, total := v.clamp()
	return total
}

// Matches returns every machine passing the current filters, in source order.
func (v *View) Matches() []domain.Machine {
	matched := make([]domain.Machine, 0, len(v.source))
	for _, m := range v.source {
		if v.matches(m) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Visible returns the machines on the current page.
func (v *View) Visible() []domain.Machine {
	matched := v.Matches()
	page, _ := v.clamp()

	start := (page - 1) * v.pageSize
	if start >= len(matched) {
		return []domain.Machine{}
	}
	end := start + v.pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end]
}

func (v *View) clamp() (page, total int) {
	matched := 0
	for _, m := range v.source {
		if v.matches(m) {
			matched++
		}
	}

	total = (matched + v.pageSize - 1) / v.pageSize
	if total < 1 {
		total = 1
	}

	page = v.page
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	return page, total
}

func (v *View) matches(m domain.Machine) bool {
	if v.filters.Status != "" && m.Status != v.filters.Status {
		return false
	}
	if v.filters.Category != "" && m.Category != v.filters.Category {
		return false
	}
	if v.filters.Location != "" {
		if m.Location == nil || *m.Location != v.filters.Location {
			return false
		}
	}

	term := strings.ToLower(strings.TrimSpace(v.filters.Search))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(m.Name), term) {
		return true
	}
	// The dashboard shows asset numbers zero-padded to three digits, so
	// "007" must find machine 7.
	if strings.Contains(fmt.Sprintf("%03d", m.MachineID), term) {
		return true
	}
	if m.User != nil && strings.Contains(strings.ToLower(*m.User), term) {
		return true
	}
	return false
}
