package pkg

// enum of passive node kind
type NodeKind uint8

const (
	TRAVEL NodeKind = iota
	SMALL
	NOTABLE
	KEYSTONE
	CLASS_START
)

func (k NodeKind) String() string {
	switch k {
	case TRAVEL:
		return "travel"
	case SMALL:
		return "small"
	case NOTABLE:
		return "notable"
	case KEYSTONE:
		return "keystone"
	case CLASS_START:
		return "class_start"
	}
	return "unknown"
}

// candidate ordering weight per node kind. notables first, travel nodes last.
func (k NodeKind) ValueScore() int {
	switch k {
	case NOTABLE:
		return 3
	case KEYSTONE:
		return 2
	case SMALL:
		return 1
	}
	return 0
}

const (
	// one passive point per level from 2-100, plus 24 points from quest milestones
	PASSIVE_POINTS_LEVEL_OFFSET = 23

	MIN_CHARACTER_LEVEL = 1
	MAX_CHARACTER_LEVEL = 100

	NEG_INF_SCORE float64 = -1e15

	DEFAULT_MAX_CANDIDATES       = 100
	DEFAULT_MAX_ITERATIONS       = 500
	DEFAULT_CONVERGENCE_PATIENCE = 3
	DEFAULT_MAX_TIME_SECOND      = 300.0
	DEFAULT_PROGRESS_EVERY       = 10
	DEFAULT_EVALUATION_WORKERS   = 4

	BALANCED_DPS_WEIGHT = 0.6
	BALANCED_EHP_WEIGHT = 0.4
)

const (
	DEBUG = false
)
