package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged die rolling. Every
// roll is logged at debug level with the face rolled and the die's current
// probability vector.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll
// to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil || logger == nil {
		panic("dice: NewLoggedRoller: src and logger must be non-nil")
	}
	return &Roller{src: src, logger: logger}
}

// Source returns the roller's randomness source, for callers that need raw
// samples (map generation, item spawning).
func (r *Roller) Source() Source {
	return r.src
}

// Roll rolls d and logs the outcome.
func (r *Roller) Roll(d WeightedDie) int {
	face := d.Roll(r.src)
	p := d.Probabilities()
	r.logger.Debug("die roll",
		zap.Int("face", face),
		zap.Float64s("probabilities", p[:]),
	)
	return face
}
