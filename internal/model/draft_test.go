package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDraftPrefillsBillName(t *testing.T) {
	draft := NewDraft("u1", "b1", "a1", "SB 1047 - Frontier AI Models")

	assert.Equal(t, ChoiceAnswer("SB 1047 - Frontier AI Models"), draft.Answers[SentinelBillName])
	assert.Equal(t, SectionGeneral, draft.CurrentSection)
	assert.NotNil(t, draft.Flags)
	assert.NotNil(t, draft.Notes)
}

func TestDraftCloneIsDeep(t *testing.T) {
	draft := NewDraft("u1", "b1", "a1", "SB 1047")
	draft.Answers["Q1"] = MultiAnswer("a", "b")
	draft.Flags["Q1"] = true
	draft.Notes["general"] = "original"

	cp := draft.Clone()
	cp.Answers["Q1"].Choices[0] = "mutated"
	cp.Answers["Q2"] = ChoiceAnswer("yes")
	cp.Flags["Q2"] = true
	cp.Notes["general"] = "changed"

	assert.Equal(t, "a", draft.Answers["Q1"].Choices[0])
	_, ok := draft.Answers["Q2"]
	assert.False(t, ok)
	assert.False(t, draft.Flags["Q2"])
	assert.Equal(t, "original", draft.Notes["general"])
}

func TestValidTransition(t *testing.T) {
	assert.True(t, ValidTransition(AssignmentAssigned, AssignmentInProgress))
	assert.True(t, ValidTransition(AssignmentInProgress, AssignmentCompleted))

	assert.False(t, ValidTransition(AssignmentAssigned, AssignmentCompleted))
	assert.False(t, ValidTransition(AssignmentCompleted, AssignmentInProgress))
	assert.False(t, ValidTransition(AssignmentInProgress, AssignmentAssigned))
	assert.False(t, ValidTransition(AssignmentCompleted, AssignmentCompleted))
}
