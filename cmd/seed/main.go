// Command seed populates a payscope database with the baseline entity
// catalog and a synthetic record set. Intended for fresh environments and
// demo resets; it is additive unless -reset is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"payscope/internal/comp/service/catalog"
	"payscope/internal/comp/service/generator"
	"payscope/internal/comp/service/records"
	"payscope/internal/comp/store/company"
	"payscope/internal/comp/store/location"
	"payscope/internal/comp/store/record"
	"payscope/internal/comp/store/role"
	"payscope/internal/comp/tier"
	"payscope/internal/platform/config"
	"payscope/internal/platform/logger"
	"payscope/internal/platform/postgres"
)

var baselineLocations = []struct {
	city  string
	state string
}{
	{"Bangalore", "Karnataka"},
	{"Hyderabad", "Telangana"},
	{"Pune", "Maharashtra"},
	{"Mumbai", "Maharashtra"},
	{"Chennai", "Tamil Nadu"},
	{"Gurgaon", "Haryana"},
	{"Noida", "Uttar Pradesh"},
	{"Delhi", "Delhi"},
	{"Kolkata", "West Bengal"},
	{"Ahmedabad", "Gujarat"},
}

var baselineRoles = []string{
	"Software Engineer",
	"Senior Software Engineer",
	"Staff Engineer",
	"Principal Engineer",
	"Engineering Manager",
	"Data Scientist",
	"Senior Data Scientist",
	"Data Engineer",
	"DevOps Engineer",
	"QA Engineer",
	"Product Manager",
	"Junior Developer",
	"Graduate Trainee",
	"Frontend Developer",
	"Backend Developer",
}

func main() {
	count := flag.Int("count", 500, "number of synthetic records to generate")
	reset := flag.Bool("reset", false, "delete existing records before generating")
	seed := flag.Int64("seed", 0, "random seed; 0 derives one from the clock")
	flag.Parse()

	cfg := config.FromEnv()
	log := logger.New().With("run_id", uuid.NewString())

	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL must be set; seeding an in-memory store has no effect")
		os.Exit(2)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	companies := company.NewPostgres(db)
	roles := role.NewPostgres(db)
	locations := location.NewPostgres(db)
	recordStore := record.NewPostgres(db)

	catalogSvc, err := catalog.New(companies, roles, locations, catalog.WithLogger(log))
	if err != nil {
		log.Error("failed to build catalog service", "error", err)
		os.Exit(1)
	}
	recordSvc, err := records.New(recordStore, records.WithLogger(log))
	if err != nil {
		log.Error("failed to build record service", "error", err)
		os.Exit(1)
	}

	if *reset {
		deleted, err := recordSvc.DeleteAll(ctx)
		if err != nil {
			log.Error("failed to reset records", "error", err)
			os.Exit(1)
		}
		log.Info("existing records deleted", "deleted", deleted)
	}

	if err := seedCatalog(ctx, catalogSvc); err != nil {
		log.Error("failed to seed catalog", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	genSvc, err := generator.New(recordStore, companies, roles, locations, tier.DefaultTable(),
		generator.WithLogger(log),
		generator.WithBatchSize(cfg.GeneratorBatchSize),
		generator.WithRand(rand.New(rand.NewSource(rngSeed))),
	)
	if err != nil {
		log.Error("failed to build generator", "error", err)
		os.Exit(1)
	}

	generated, err := genSvc.Generate(ctx, *count)
	if err != nil {
		log.Error("generation failed", "generated", generated, "error", err)
		os.Exit(1)
	}
	log.Info("seed complete", "generated", generated, "rng_seed", rngSeed)
}

// seedCatalog ensures the baseline companies, roles and locations exist.
// First reference wins; rerunning against a populated database is a no-op.
func seedCatalog(ctx context.Context, svc *catalog.Service) error {
	for _, name := range tier.DefaultCompanyNames() {
		if _, err := svc.EnsureCompany(ctx, name); err != nil {
			return fmt.Errorf("ensure company %s: %w", name, err)
		}
	}
	for _, title := range baselineRoles {
		if _, err := svc.EnsureRole(ctx, title); err != nil {
			return fmt.Errorf("ensure role %s: %w", title, err)
		}
	}
	for _, l := range baselineLocations {
		if _, err := svc.EnsureLocation(ctx, l.city, l.state); err != nil {
			return fmt.Errorf("ensure location %s: %w", l.city, err)
		}
	}
	return nil
}
