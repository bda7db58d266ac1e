// Package catalog holds the fixed title list and candidate pool sampling.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/selimbas/revquiz/pkg/logger"
)

// Entry is one title in the catalog. Read-only input to the pipeline.
type Entry struct {
	ID   int      `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// HasTag reports whether the entry carries the given category tag.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// fallback keeps the service serving something when the catalog file is
// missing or broken.
var fallback = []Entry{
	{ID: 730, Name: "Counter-Strike 2", Tags: []string{"Aksiyon"}},
}

// Load reads the JSON catalog at path. Any failure falls back to the built-in
// single-entry catalog; a broken catalog must never take the process down.
func Load(ctx context.Context, path string) []Entry {
	log := logger.Get().Named("catalog")

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn(ctx, "catalog file unreadable, using fallback",
			logger.String("path", path), logger.Error(err))
		return fallback
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn(ctx, "catalog file malformed, using fallback",
			logger.String("path", path), logger.Error(err))
		return fallback
	}
	if len(entries) == 0 {
		log.Warn(ctx, "catalog file empty, using fallback", logger.String("path", path))
		return fallback
	}

	if err := validate(entries); err != nil {
		log.Warn(ctx, "catalog invalid, using fallback", logger.Error(err))
		return fallback
	}

	log.Info(ctx, "catalog loaded", logger.Int("titles", len(entries)))
	return entries
}

func validate(entries []Entry) error {
	seen := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return fmt.Errorf("%w: entry %d has no name", ErrInvalidCatalog, e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidCatalog, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
