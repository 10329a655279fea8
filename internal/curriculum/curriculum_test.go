package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := ParseCycle("senior")
	require.NoError(t, err)
	assert.Equal(t, CycleSenior, c)

	c, err = ParseCycle("")
	require.NoError(t, err)
	assert.Equal(t, Cycle(""), c)

	_, err = ParseCycle("primary")
	assert.Error(t, err)

	topic, err := ParseTopic("trigonometry")
	require.NoError(t, err)
	assert.Equal(t, TopicTrigonometry, topic)

	_, err = ParseTopic("calculus")
	assert.Error(t, err)

	d, err := ParseDifficulty("exam")
	require.NoError(t, err)
	assert.Equal(t, DifficultyExam, d)

	_, err = ParseDifficulty("impossible")
	assert.Error(t, err)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Leaving Cert", CycleSenior.Label())
	assert.Equal(t, "Select Cycle", Cycle("").Label())
	assert.Equal(t, "Probability", TopicProbability.Label())
	assert.Equal(t, "Select Topic", Topic("").Label())
	assert.Equal(t, "Exam-style", DifficultyExam.Label())
	assert.Equal(t, "Select Difficulty", Difficulty("").Label())
}

func TestSelection(t *testing.T) {
	sel := DefaultSelection()
	assert.True(t, sel.AdaptiveMode)
	assert.False(t, sel.SmartMode)
	assert.False(t, sel.TopicEnabled())
	assert.False(t, sel.DifficultyEnabled())

	sel.Cycle = CycleJunior
	assert.True(t, sel.TopicEnabled())

	sel.Topic = TopicAlgebra
	sel.Difficulty = DifficultyEasy
	assert.False(t, sel.DifficultyEnabled(), "difficulty needs smart mode")
	assert.Equal(t, DefaultDifficulty, sel.EffectiveDifficulty())

	sel.SmartMode = true
	assert.True(t, sel.DifficultyEnabled())
	assert.Equal(t, DifficultyEasy, sel.EffectiveDifficulty())
}
