package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpdesk-tools/inventory/internal/repository"
)

// API holds repository dependencies for clean data access
type API struct {
	machineRepo   repository.MachineRepository
	chipRepo      repository.ChipRepository
	telSystemRepo repository.TelSystemRepository
	locationRepo  repository.LocationRepository
	userRepo      repository.UserRepository
	productRepo   repository.ProductRepository
}

// NewAPI creates a new API instance with repositories initialized from the database
func NewAPI(db *sql.DB) *API {
	return NewAPIWithRepos(
		repository.NewMachineRepository(db),
		repository.NewChipRepository(db),
		repository.NewTelSystemRepository(db),
		repository.NewLocationRepository(db),
		repository.NewUserRepository(db),
		repository.NewProductRepository(db),
	)
}

// NewAPIWithRepos creates an API instance from explicit repositories, used by tests
func NewAPIWithRepos(
	machineRepo repository.MachineRepository,
	chipRepo repository.ChipRepository,
	telSystemRepo repository.TelSystemRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
) *API {
	return &API{
		machineRepo:   machineRepo,
		chipRepo:      chipRepo,
		telSystemRepo: telSystemRepo,
		locationRepo:  locationRepo,
		userRepo:      userRepo,
		productRepo:   productRepo,
	}
}

// MachineRepo exposes the machine repository, used by the metrics collector
func (a *API) MachineRepo() repository.MachineRepository {
	return a.machineRepo
}

// RegisterRoutes registers all API endpoints to the given chi router.
func (a *API) RegisterRoutes(r chi.Router) {
	machines := NewMachines(a.machineRepo)
	chips := NewChips(a.chipRepo)
	telSystems := NewTelSystems(a.telSystemRepo)
	locations := NewLocations(a.locationRepo)
	users := NewUsers(a.userRepo)
	products := NewProducts(a.productRepo)

	r.Route("/api/machines", machines.Routes)
	// The retired dashboard called the same collection "parts"
	r.Route("/api/parts", machines.Routes)

	r.Route("/api/chips", chips.Routes)
	r.Route("/api/telsystems", telSystems.Routes)
	r.Route("/api/locations", locations.Routes)
	r.Route("/api/users", users.Routes)
	r.Route("/api/products", products.Routes)

	r.Post("/api/wol", a.wakeOnLANHandler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Inventory API is running\n"))
	})
}
