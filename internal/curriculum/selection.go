package curriculum

// DefaultDifficulty is the difficulty requested when smart mode is off.
const DefaultDifficulty = DifficultyMedium

// Selection is everything the learner has chosen for the next question.
// Zero-valued enum fields mean "not selected yet".
type Selection struct {
	Cycle        Cycle      `json:"cycle"`
	Topic        Topic      `json:"topic"`
	Difficulty   Difficulty `json:"difficulty"`
	SmartMode    bool       `json:"smartMode"`
	AdaptiveMode bool       `json:"adaptiveMode"`
}

// DefaultSelection is the selection a new session starts with: nothing
// chosen, smart mode off, adaptive mode on.
func DefaultSelection() Selection {
	return Selection{AdaptiveMode: true}
}

// EffectiveDifficulty is the difficulty that would be requested. The
// selected difficulty only counts in smart mode.
func (s Selection) EffectiveDifficulty() Difficulty {
	if s.SmartMode {
		return s.Difficulty
	}
	return DefaultDifficulty
}

// TopicEnabled reports whether a topic can be chosen yet.
func (s Selection) TopicEnabled() bool {
	return s.Cycle != ""
}

// DifficultyEnabled reports whether a difficulty can be chosen yet.
func (s Selection) DifficultyEnabled() bool {
	return s.SmartMode && s.Topic != ""
}
