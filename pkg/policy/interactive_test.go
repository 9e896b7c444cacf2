package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/logsweep/logsweep/pkg/analyze"
	"github.com/logsweep/logsweep/pkg/core"
)

// fakePrompter replays a scripted sequence of choices and records how
// often it was consulted.
type fakePrompter struct {
	choices  []Choice
	asked    int
	confirms int
	confirm  bool
}

func (f *fakePrompter) Ask(occ *core.Occurrence) Choice {
	f.asked++
	if len(f.choices) == 0 {
		return ChoiceInvalid
	}
	c := f.choices[0]
	f.choices = f.choices[1:]
	return c
}

func (f *fakePrompter) ConfirmCommentRemoval(occ *core.Occurrence) bool {
	f.confirms++
	return f.confirm
}

func newInteractive(fake *fakePrompter) *InteractivePolicy {
	return NewInteractivePolicy(fake, analyze.NewMatcher([]string{"console.log"}))
}

func plainOcc(text string) *core.Occurrence {
	return &core.Occurrence{Token: "console.log", RawText: text}
}

func TestInteractiveChoices(t *testing.T) {
	tests := []struct {
		choice   Choice
		expected core.Action
	}{
		{ChoiceDelete, core.ActionDelete},
		{ChoiceKeep, core.ActionKeep},
		{ChoiceConvertInfo, core.ActionConvertInfo},
		{ChoiceConvertError, core.ActionConvertError},
		{ChoiceInvalid, core.ActionKeep},
	}

	for _, tt := range tests {
		fake := &fakePrompter{choices: []Choice{tt.choice}}
		policy := newInteractive(fake)
		assert.Equal(t, tt.expected, policy.Decide(plainOcc("console.log('x');")))
	}
}

func TestInteractiveSkipSuppressesSimilar(t *testing.T) {
	fake := &fakePrompter{choices: []Choice{ChoiceSkip}}
	policy := newInteractive(fake)

	first := policy.Decide(plainOcc("console.log('loading');"))
	assert.Equal(t, core.ActionSkip, first)
	assert.Equal(t, 1, fake.asked)

	// Same shape, different literal: answered from the skip set
	second := policy.Decide(plainOcc("console.log('saving');"))
	assert.Equal(t, core.ActionKeep, second)
	assert.Equal(t, 1, fake.asked)

	// Different shape prompts again
	fake.choices = []Choice{ChoiceDelete}
	third := policy.Decide(plainOcc("console.log('x', y);"))
	assert.Equal(t, core.ActionDelete, third)
	assert.Equal(t, 2, fake.asked)
}

func TestInteractiveQuitHaltsFile(t *testing.T) {
	fake := &fakePrompter{choices: []Choice{ChoiceQuit}}
	policy := newInteractive(fake)

	assert.Equal(t, core.ActionKeep, policy.Decide(plainOcc("console.log('a');")))
	assert.True(t, policy.Quit())

	// Later occurrences keep without prompting
	assert.Equal(t, core.ActionKeep, policy.Decide(plainOcc("console.log('b', x);")))
	assert.Equal(t, 1, fake.asked)

	// Reset restores prompting for the next file
	policy.Reset()
	assert.False(t, policy.Quit())
	fake.choices = []Choice{ChoiceDelete}
	assert.Equal(t, core.ActionDelete, policy.Decide(plainOcc("console.log('c');")))
}

func TestInteractiveCommentedUsesConfirm(t *testing.T) {
	occ := plainOcc("// console.log('x');")
	occ.Commented = true

	fake := &fakePrompter{confirm: true}
	policy := newInteractive(fake)
	assert.Equal(t, core.ActionRemoveComment, policy.Decide(occ))
	assert.Equal(t, 1, fake.confirms)
	assert.Equal(t, 0, fake.asked)

	fake = &fakePrompter{confirm: false}
	policy = newInteractive(fake)
	assert.Equal(t, core.ActionKeep, policy.Decide(occ))
}

func TestInteractiveResetClearsSkips(t *testing.T) {
	fake := &fakePrompter{choices: []Choice{ChoiceSkip, ChoiceDelete}}
	policy := newInteractive(fake)

	policy.Decide(plainOcc("console.log('a');"))
	policy.Reset()

	// Same shape prompts again after reset
	assert.Equal(t, core.ActionDelete, policy.Decide(plainOcc("console.log('b');")))
	assert.Equal(t, 2, fake.asked)
}
