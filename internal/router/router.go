package router

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-shelter-adoption/internal/adapters/notify/console"
	mem "pet-shelter-adoption/internal/adapters/storage/memory"
	pg "pet-shelter-adoption/internal/adapters/storage/postgres"
	"pet-shelter-adoption/internal/domain/applications"
	"pet-shelter-adoption/internal/domain/pets"
	"pet-shelter-adoption/internal/domain/profiles"
	"pet-shelter-adoption/internal/domain/shelters"
	"pet-shelter-adoption/internal/middleware"
	"pet-shelter-adoption/internal/platform/logger"
	"pet-shelter-adoption/internal/ports/auth"
	"pet-shelter-adoption/internal/ports/notify"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: default console (log).
	Notifier notify.Notifier

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = console.New(log)
	}

	var (
		sheltersRepo shelters.Repository
		petsRepo     pets.Repository
		historyRepo  pets.HistoryRepository
		profilesRepo profiles.Repository
		appsRepo     applications.Repository
	)

	if opts.DB != nil {
		sheltersRepo = pg.NewSheltersRepo(opts.DB)
		petsRepo = pg.NewPetsRepo(opts.DB)
		historyRepo = pg.NewHistoryRepo(opts.DB)
		profilesRepo = pg.NewProfilesRepo(opts.DB)
		appsRepo = pg.NewApplicationsRepo(opts.DB)
	} else {
		store := mem.NewStore()
		sheltersRepo = mem.NewSheltersRepo(store)
		petsRepo = mem.NewPetsRepo(store)
		historyRepo = mem.NewHistoryRepo(store)
		profilesRepo = mem.NewProfilesRepo(store)
		appsRepo = mem.NewApplicationsRepo(store)
	}

	// Services por módulo. El orden importa: pets necesita el unlinker de
	// solicitudes, shelters necesita la purga de pets y el unlink de staff.
	profilesSvc := profiles.NewService(profilesRepo)
	petsSvc := pets.NewService(petsRepo, historyRepo, appsRepo, log)
	sheltersSvc := shelters.NewService(sheltersRepo, petsSvc, profilesSvc)
	appsSvc := applications.NewService(appsRepo, petCatalog{pets: petsSvc, shelters: sheltersSvc}, notifier, log)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	shelters.RegisterRoutes(r, sheltersSvc)
	profiles.RegisterRoutes(r, profilesSvc)
	applications.RegisterRoutes(r, appsSvc)

	return r
}

// petCatalog adapta pets+shelters al snapshot mínimo que necesita la
// máquina de estados, sin acoplar esos paquetes entre sí.
type petCatalog struct {
	pets     *pets.Service
	shelters *shelters.Service
}

func (c petCatalog) Snapshot(ctx context.Context, petID string) (applications.PetSnapshot, error) {
	p, err := c.pets.GetByID(ctx, petID)
	if err != nil {
		return applications.PetSnapshot{}, err
	}

	// Refugio sin email (o borrado a mitad) => simplemente no se notifica.
	email, _ := c.shelters.ContactEmail(ctx, p.ShelterID)

	return applications.PetSnapshot{
		ID:           p.ID,
		Name:         p.Name,
		Image:        p.Image,
		ShelterID:    p.ShelterID,
		ShelterEmail: email,
	}, nil
}
