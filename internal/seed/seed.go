// Package seed ships an initial article batch with the binary. It plays the
// role of the server-rendered first paint: adopted when the cache is empty,
// persisted so the next launch can start offline.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/Aashishkr2003/FactFusion/internal/cache"
)

//go:embed seed_batch.json
var seedFS embed.FS

// Batch returns the embedded seed batch.
func Batch() (cache.Batch, error) {
	data, err := seedFS.ReadFile("seed_batch.json")
	if err != nil {
		return cache.Batch{}, fmt.Errorf("reading embedded seed: %w", err)
	}
	var b cache.Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return cache.Batch{}, fmt.Errorf("parsing embedded seed: %w", err)
	}
	return b, nil
}
