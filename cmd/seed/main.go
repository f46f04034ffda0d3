// Command seed populates the configured store with sample recipes and
// users for local development.
package main

import (
	"context"
	"encoding/json"

	"github.com/receptar-app/backend/config"
	"github.com/receptar-app/backend/internal/database"
	"github.com/receptar-app/backend/internal/logging"
	"github.com/receptar-app/backend/internal/repo"
	"github.com/receptar-app/backend/internal/service"
	"github.com/receptar-app/backend/internal/store"
)

// Payloads go through the same validation as API requests, so they
// carry only schema fields.
var sampleRecipes = []map[string]any{
	{
		"name":        "Kuracia polievka",
		"category":    "Polievky",
		"ingredients": []string{"kura", "mrkva", "zeler", "rezance"},
		"steps":       []string{"Uvariť vývar z kurčaťa a zeleniny.", "Pridať rezance a dovariť."},
		"prepTime":    "90 min",
		"difficulty":  "Jednoduchá",
	},
	{
		"name":        "Bryndzové halušky",
		"category":    "Hlavné jedlá",
		"ingredients": []string{"zemiaky", "múka", "bryndza", "slanina"},
		"steps":       []string{"Pripraviť haluškové cesto.", "Uvariť halušky.", "Zmiešať s bryndzou a posypať slaninou."},
		"prepTime":    "45 min",
		"difficulty":  "Stredná",
	},
	{
		"name":        "Šúľance s makom",
		"category":    "Dezerty",
		"ingredients": []string{"zemiaky", "múka", "mak", "cukor", "maslo"},
		"steps":       []string{"Vypracovať cesto.", "Vyvaľkať a nakrájať šúľance.", "Uvariť a obaliť v maku."},
		"prepTime":    "60 min",
		"difficulty":  "Stredná",
	},
}

var sampleUsers = []map[string]any{
	{"name": "Jana Nováková", "email": "jana@example.com"},
	{"name": "Peter Kováč", "email": "peter@example.com"},
}

func main() {
	log := logging.NewLogger(config.GetEnvironment())

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	ctx := context.Background()

	st, err := openStore(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	defer st.Close()

	recipes, err := repo.NewRecipes(ctx, st)
	if err != nil {
		log.WithError(err).Fatal("failed to load recipe collection")
	}
	users, err := repo.NewUsers(ctx, st)
	if err != nil {
		log.WithError(err).Fatal("failed to load user collection")
	}

	recipeSvc := service.NewRecipeService(recipes, users, nil, log)
	userSvc := service.NewUserService(users)

	for _, r := range sampleRecipes {
		payload, err := json.Marshal(r)
		if err != nil {
			log.WithError(err).Fatal("failed to encode sample recipe")
		}
		created, err := recipeSvc.Create(ctx, payload)
		if err != nil {
			log.WithError(err).WithField("recipe", r["name"]).Fatal("failed to seed recipe")
		}
		log.WithField("id", created.ID).WithField("name", created.Name).Info("seeded recipe")
	}

	for _, u := range sampleUsers {
		payload, err := json.Marshal(u)
		if err != nil {
			log.WithError(err).Fatal("failed to encode sample user")
		}
		created, err := userSvc.Create(ctx, payload)
		if err != nil {
			log.WithError(err).WithField("user", u["name"]).Fatal("failed to seed user")
		}
		log.WithField("id", created.ID).WithField("name", created.Name).Info("seeded user")
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverFile:
		return store.NewFile(cfg.DataDir)
	case config.DriverSQLite, config.DriverPostgres:
		db, err := database.Open(cfg)
		if err != nil {
			return nil, err
		}
		return store.NewSQL(db)
	default:
		return store.NewMemory(), nil
	}
}
