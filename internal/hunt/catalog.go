package hunt

import (
	"encoding/json"
	"fmt"
	"io"
)

// Catalog is the ordered checkpoint list, read once at startup.
type Catalog []Checkpoint

// ByID returns the checkpoint with the given id.
func (c Catalog) ByID(id int) (Checkpoint, bool) {
	for _, cp := range c {
		if cp.ID == id {
			return cp, true
		}
	}
	return Checkpoint{}, false
}

// IDs returns the checkpoint ids in catalog order.
func (c Catalog) IDs() []int {
	ids := make([]int, len(c))
	for i, cp := range c {
		ids[i] = cp.ID
	}
	return ids
}

// Validate checks catalog-level invariants: at least one checkpoint, unique
// ids, in-range coordinates, and a configured answer for every riddle.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	seen := make(map[int]struct{}, len(c))
	for _, cp := range c {
		if _, dup := seen[cp.ID]; dup {
			return fmt.Errorf("duplicate checkpoint id %d", cp.ID)
		}
		seen[cp.ID] = struct{}{}

		if cp.Coordinates.Lat < -90 || cp.Coordinates.Lat > 90 {
			return fmt.Errorf("checkpoint %d: latitude %f out of range", cp.ID, cp.Coordinates.Lat)
		}
		if cp.Coordinates.Lng < -180 || cp.Coordinates.Lng > 180 {
			return fmt.Errorf("checkpoint %d: longitude %f out of range", cp.ID, cp.Coordinates.Lng)
		}
		if cp.ChallengeType == ChallengeRiddle && cp.Clue.Answer == "" {
			return fmt.Errorf("checkpoint %d: riddle without an answer", cp.ID)
		}
	}
	return nil
}

// LoadCatalog decodes a JSON checkpoint list and validates it.
func LoadCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}
