package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTopic(t *testing.T) {
	assert.True(t, IsValidTopic("Cardiology"))
	assert.True(t, IsValidTopic("Infectious Disease"))
	assert.False(t, IsValidTopic("Astrology"))
	assert.False(t, IsValidTopic(""))
	assert.False(t, IsValidTopic("cardiology"), "topic lookup is case sensitive")
}

func TestIsValidSubtopic(t *testing.T) {
	assert.True(t, IsValidSubtopic("Cardiology", "Arrhythmias"))
	assert.False(t, IsValidSubtopic("Cardiology", "Stroke"))
	assert.False(t, IsValidSubtopic("Astrology", "Arrhythmias"), "invalid topic never validates a subtopic")
	assert.False(t, IsValidSubtopic("Cardiology", ""))
}

func TestSubtopics(t *testing.T) {
	subs := Subtopics("Neurology")
	assert.Equal(t, []string{"Stroke", "Seizure Disorders", "Demyelinating Disease", "Neuromuscular Disorders", "Movement Disorders"}, subs)

	assert.Empty(t, Subtopics("Astrology"))

	// Mutating the returned slice must not leak into the registry.
	subs[0] = "mutated"
	assert.Equal(t, "Stroke", Subtopics("Neurology")[0])
}

func TestTopicNames(t *testing.T) {
	names := TopicNames()
	assert.Len(t, names, 12)
	assert.Equal(t, "Cardiology", names[0])
	for _, name := range names {
		assert.True(t, IsValidTopic(name))
	}
}
