package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legiscore/internal/catalog"
	"legiscore/internal/model"
)

// testCatalog builds a small catalog with a two-level dependency chain:
// Q1 governs Q1a and Q1b, and Q1a in turn governs Q1ai. Q2 is independent.
func testCatalog() *catalog.Catalog {
	sections := []model.Section{
		{ID: model.SectionGeneral, Title: "General"},
		{ID: model.SectionSubmit, Title: "Submit"},
	}
	questions := []model.Question{
		{ID: "Q1", SectionID: model.SectionGeneral, Kind: model.QuestionKindYesNo, Prompt: "Q1?"},
		{ID: "Q1a", SectionID: model.SectionGeneral, Kind: model.QuestionKindYesNo, Prompt: "Q1a?"},
		{ID: "Q1b", SectionID: model.SectionGeneral, Kind: model.QuestionKindYesNo, Prompt: "Q1b?"},
		{ID: "Q1ai", SectionID: model.SectionGeneral, Kind: model.QuestionKindYesNo, Prompt: "Q1ai?"},
		{ID: "Q2", SectionID: model.SectionGeneral, Kind: model.QuestionKindYesNo, Prompt: "Q2?"},
	}
	deps := []catalog.Dependency{
		{QuestionID: "Q1a", DependsOn: []string{"Q1"}},
		{QuestionID: "Q1b", DependsOn: []string{"Q1"}},
		{QuestionID: "Q1ai", DependsOn: []string{"Q1a"}},
	}
	return catalog.MustNew(sections, questions, deps)
}

type testEnv struct {
	svc         *ScorecardService
	draftRepo   *fakeDraftRepo
	subRepo     *fakeSubmissionRepo
	assignRepo  *fakeAssignmentRepo
	draftCache  *fakeDraftCache
	sessions    *fakeSessionCache
	broadcaster *fakeBroadcaster
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []string
}

func (b *fakeBroadcaster) BroadcastToUser(userID string, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, userID+"/"+msgType)
}

func (b *fakeBroadcaster) sent() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.messages...)
}

func newTestEnv(cat *catalog.Catalog) *testEnv {
	env := &testEnv{
		draftRepo:   newFakeDraftRepo(),
		subRepo:     newFakeSubmissionRepo(),
		assignRepo:  newFakeAssignmentRepo(),
		draftCache:  newFakeDraftCache(),
		sessions:    newFakeSessionCache(),
		broadcaster: &fakeBroadcaster{},
	}
	env.svc = NewScorecardService(cat, env.draftRepo, env.subRepo, env.assignRepo, env.draftCache, env.sessions)
	env.svc.SetBroadcaster(env.broadcaster)
	return env
}

// seedDraft installs a fresh draft directly in the cache, the way Start does
func (e *testEnv) seedDraft(t *testing.T, userID, billID, assignmentID string) *model.Draft {
	t.Helper()
	draft := model.NewDraft(userID, billID, assignmentID, "HB 1 - Test Bill")
	require.NoError(t, e.draftCache.Set(context.Background(), draft))
	return draft
}

func TestGetDraftFallsBackToRepoAndWarmsCache(t *testing.T) {
	env := newTestEnv(testCatalog())
	ctx := context.Background()

	draft := model.NewDraft("u1", "b1", "a1", "HB 1 - Test Bill")
	require.NoError(t, env.draftRepo.Upsert(ctx, draft))

	got, err := env.svc.GetDraft(ctx, "u1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "b1", got.BillID)

	// second read must come from the warmed cache
	cached, err := env.draftCache.Get(ctx, "u1", "b1")
	require.NoError(t, err)
	require.NotNil(t, cached)
}

func TestGetDraftNotFound(t *testing.T) {
	env := newTestEnv(testCatalog())

	_, err := env.svc.GetDraft(context.Background(), "u1", "b1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestSetAnswerSuppressingCascade(t *testing.T) {
	env := newTestEnv(testCatalog())
	ctx := context.Background()
	env.seedDraft(t, "u1", "b1", "a1")

	// answer the whole chain affirmatively, flag a dependent
	_, err := env.svc.SetAnswer(ctx, "u1", "b1", "Q1", model.ChoiceAnswer(model.AnswerYes))
	require.NoError(t, err)
	_, err = env.svc.SetAnswer(ctx, "u1", "b1", "Q1a", model.ChoiceAnswer(model.AnswerYes))
	require.NoError(t, err)
	_, err = env.svc.SetAnswer(ctx, "u1", "b1", "Q1ai", model.ChoiceAnswer(model.AnswerYes))
	require.NoError(t, err)
	_, err = env.svc.ToggleFlag(ctx, "u1", "b1", "Q1ai")
	require.NoError(t, err)

	// flipping the governor to "no" force-fills every transitive dependent
	// and clears their flags
	draft, err := env.svc.SetAnswer(ctx, "u1", "b1", "Q1", model.ChoiceAnswer(model.AnswerNo))
	require.NoError(t, err)

	assert.Equal(t, model.ChoiceAnswer(model.AnswerNo), draft.Answers["Q1"])
	for _, dep := range []string{"Q1a", "Q1b", "Q1ai"} {
		assert.Equal(t, model.NAFill(), draft.Answers[dep], dep)
		assert.False(t, draft.Flags[dep], dep)
	}
}

func TestSetAnswerAffirmativeReopensDependents(t *testing.T) {
	env := newTestEnv(testCatalog())
	ctx := context.Background()
	env.seedDraft(t, "u1", "b1", "a1")

	_, err := env.svc.SetAnswer(ctx, "u1", "b1", "Q1", model.ChoiceAnswer(model.AnswerNo))
	require.NoError(t, err)

	draft, err := env.svc.SetAnswer(ctx, "u1", "b1", "Q1", model.ChoiceAnswer(model.AnswerYes))
	require.NoError(t, err)

	// the force-fills are cleared so the user must answer fresh
	for _, dep := range []string{"Q1a", "Q1b", "Q1ai"} {
		_, ok := draft.Answers[dep]
		assert.False(t, ok, dep)
	}
	assert.Equal(t, model.ChoiceAnswer(model.AnswerYes), draft.Answers["Q1"])
}

func TestSetAnswerSentinelBypassesCascade(t *testing.T) {
	env := newTestEnv(testCatalog())
	ctx := context.Background()
	env.seedDraft(t, "u1", "b1", "a1")

	_, err := env.svc.SetAnswer(ctx, "u1", "b1", "Q1", model.ChoiceAnswer(model.AnswerYes))
	require.NoError(t, err)
	_, err = env.svc.SetAnswer(ctx, "u1", "b1", "Q1a", model.ChoiceAnswer(model.AnswerYes))
	require.NoError(t, err)

	// "no" under the sentinel key is a display name, not a suppressing value
	draft, err := env.svc.SetAnswer(ctx, "u1", "b1", model.SentinelBillName, model.ChoiceAnswer("no"))
	require.NoError(t, err)

	assert.Equal(t, model.ChoiceAnswer("no"), draft.Answers[model.SentinelBillName])
	assert.Equal(t, model.ChoiceAnswer(model.AnswerYes), draft.Answers["Q1a"])
}

func TestSetAnswerUnknownQuestion(t *testing.T) {
	env := newTestEnv(testCatalog())
	env.seedDraft(t, "u1", "b1", "a1")

	_, err := env.svc.SetAnswer(context.Background(), "u1", "b1", "ZZ", model.ChoiceAnswer(model.AnswerYes))
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestSetAnswerPersistsThroughQueue(t *testing.T) {
	env := newTestEnv(testCatalog())
	ctx := context.Background()
	env.seedDraft(t, "u1", "b1", "a1")

	_, err := env.svc.SetAnswer(ctx, "u1", "b1", "Q2", model.ChoiceAnswer(model.AnswerYes))
	require.NoError(t, err)
	env.svc.Queue().Flush("u1", "b1")

	stored, err := env.draftRepo.Get(ctx, "u1", "b1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, model.ChoiceAnswer(model.AnswerYes), stored.Answers["Q2"])
	assert.Contains(t, env.broadcaster.sent(), "u1/draft_saved")
}

func TestToggleFlag(t *testing.T) {
	env := newTestEnv(testCatalog())
	ctx := context.Background()
	env.seedDraft(t, "u1", "b1", "a1")

	draft, err := env.svc.ToggleFlag(ctx, "u1", "b1", "Q2")
	require.NoError(t, err)
	assert.True(t, draft.Flags["Q2"])

	draft, err = env.svc.ToggleFlag(ctx, "u1", "b1", "Q2")
	require.NoError(t, err)
	_, ok := draft.Flags["Q2"]
	assert.False(t, ok)
}

func TestSetNoteUnknownSection(t *testing.T) {
	env := newTestEnv(testCatalog())
	env.seedDraft(t, "u1", "b1", "a1")

	_, err := env.svc.SetNote(context.Background(), "u1", "b1", "bogus", "text")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestSetNoteAndCurrentSection(t *testing.T) {
	env := newTestEnv(testCatalog())
	ctx := context.Background()
	env.seedDraft(t, "u1", "b1", "a1")

	draft, err := env.svc.SetNote(ctx, "u1", "b1", model.SectionGeneral, "ambiguous preemption clause")
	require.NoError(t, err)
	assert.Equal(t, "ambiguous preemption clause", draft.Notes[model.SectionGeneral])

	draft, err = env.svc.SetCurrentSection(ctx, "u1", "b1", model.SectionSubmit)
	require.NoError(t, err)
	assert.Equal(t, model.SectionSubmit, draft.CurrentSection)
}
