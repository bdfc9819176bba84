package hunt

// DefaultProximityThreshold is the activation radius in meters when a
// checkpoint has no override.
const DefaultProximityThreshold = 50.0

// Evaluator drives found transitions from live position samples.
type Evaluator struct {
	Threshold float64 // meters; 0 falls back to DefaultProximityThreshold
}

// Radius returns the activation radius for a checkpoint.
func (e Evaluator) Radius(cp Checkpoint) float64 {
	if cp.RadiusOverride > 0 {
		return cp.RadiusOverride
	}
	if e.Threshold > 0 {
		return e.Threshold
	}
	return DefaultProximityThreshold
}

// Evaluate checks pos against every route checkpoint that is unlocked and
// not yet found, marking those within range as found. It returns the ids
// newly found, in route order. Re-evaluating an unchanged position is a
// no-op: already-found checkpoints never transition twice.
func (e Evaluator) Evaluate(pos Coordinates, catalog Catalog, p *TeamProgress) []int {
	var found []int
	for _, cpID := range p.Route {
		if p.StateOf(cpID) != StateUnlocked {
			continue
		}
		cp, ok := catalog.ByID(cpID)
		if !ok {
			continue
		}
		if Distance(pos, cp.Coordinates) <= e.Radius(cp) {
			if newly, err := p.MarkFound(cpID); err == nil && newly {
				found = append(found, cpID)
			}
		}
	}
	return found
}
