package progress

// DifficultyShares is the advisory target mix of question difficulties for
// a session. The three shares sum to 1. The question catalog applies them
// to its available pool and tops up from any difficulty when a bucket is
// under-supplied.
type DifficultyShares struct {
	Easy   float64 `json:"easy"`
	Medium float64 `json:"medium"`
	Hard   float64 `json:"hard"`
}

// SharesForSkill maps a skill level to its target difficulty mix. Safety
// clamps keep at least some easy material in every session and cap the hard
// share.
func SharesForSkill(skill float64) DifficultyShares {
	var s DifficultyShares
	switch {
	case skill < 0.2:
		s = DifficultyShares{Easy: 0.70, Medium: 0.25, Hard: 0.05}
	case skill < 0.4:
		s = DifficultyShares{Easy: 0.50, Medium: 0.40, Hard: 0.10}
	case skill < 0.6:
		s = DifficultyShares{Easy: 0.30, Medium: 0.50, Hard: 0.20}
	case skill < 0.8:
		s = DifficultyShares{Easy: 0.15, Medium: 0.45, Hard: 0.40}
	default:
		s = DifficultyShares{Easy: 0.10, Medium: 0.30, Hard: 0.60}
	}

	if s.Easy < 0.10 {
		s.Easy = 0.10
	}
	if s.Hard > 0.70 {
		s.Hard = 0.70
	}
	return s
}
