// Package seed loads the sample catalog into an empty store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pratham-associates/listings/internal/logger"
	"github.com/pratham-associates/listings/internal/models"
	"github.com/pratham-associates/listings/internal/repository"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the sample data shipped with the service.
type Catalog struct {
	Users      []models.UserInput     `yaml:"users"`
	Properties []models.PropertyInput `yaml:"properties"`
}

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse decodes a catalog and checks every listing against the same rules
// the admin create route applies. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var catalog Catalog
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	validate := validator.New()
	validate.SetTagName("binding")
	models.ConfigureValidator(validate)
	for i, p := range catalog.Properties {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("catalog property %d (%q): %w", i, p.Title, err)
		}
	}
	for i, u := range catalog.Users {
		if u.Username == "" {
			return nil, fmt.Errorf("catalog user %d: username is required", i)
		}
	}

	return &catalog, nil
}

// Result counts what Seed inserted.
type Result struct {
	Users      int
	Properties int
	Skipped    bool
}

// Seed inserts the catalog unless the store already holds listings.
// Users that already exist by username are left alone.
func Seed(ctx context.Context, store *repository.Store, catalog *Catalog, log *logger.Logger) (*Result, error) {
	count, err := store.Properties.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}
	if count > 0 {
		log.Info("Store already has listings, skipping seed", map[string]interface{}{
			"properties": count,
			"driver":     store.Driver(),
		})
		return &Result{Skipped: true}, nil
	}

	result := &Result{}

	for _, u := range catalog.Users {
		existing, err := store.Users.FindByUsername(ctx, u.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user %q: %w", u.Username, err)
		}
		if existing != nil {
			continue
		}
		if _, err := store.Users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("failed to create user %q: %w", u.Username, err)
		}
		result.Users++
	}

	for _, p := range catalog.Properties {
		if _, err := store.Properties.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to create property %q: %w", p.Title, err)
		}
		result.Properties++
	}

	log.Info("Sample catalog loaded", map[string]interface{}{
		"users":      result.Users,
		"properties": result.Properties,
		"driver":     store.Driver(),
	})

	return result, nil
}
