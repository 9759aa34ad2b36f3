package progression_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/sagaforge/progression-api/internal/engine"
	enginemock "github.com/sagaforge/progression-api/internal/engine/mock"
	"github.com/sagaforge/progression-api/internal/entities/saga"
	"github.com/sagaforge/progression-api/internal/errors"
	"github.com/sagaforge/progression-api/internal/orchestrators/progression"
	"github.com/sagaforge/progression-api/internal/pkg/idgen"
	characterrepo "github.com/sagaforge/progression-api/internal/repositories/character"
	"github.com/sagaforge/progression-api/internal/repositories/intentcache"
	progressionsvc "github.com/sagaforge/progression-api/internal/services/progression"
	"github.com/sagaforge/progression-api/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockEngine *enginemock.MockEngine
	charRepo   characterrepo.Repository
	cache      intentcache.Repository
	orch       *progression.Orchestrator
	cleanup    func()
	ctx        context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockEngine = enginemock.NewMockEngine(s.ctrl)

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.charRepo = characterrepo.NewRedisRepository(client)
	s.cache = intentcache.NewMemoryRepository(nil)
	s.ctx = context.Background()

	orch, err := progression.New(&progression.Config{
		CharacterRepo: s.charRepo,
		IntentCache:   s.cache,
		Engine:        s.mockEngine,
		IDGenerator:   idgen.NewSequential("session"),
	})
	s.Require().NoError(err)
	s.orch = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *OrchestratorTestSuite) seedCharacter() {
	_, err := s.charRepo.Put(s.ctx, characterrepo.PutInput{Character: &saga.Character{
		ID:      "char-1",
		Name:    "Kira Venn",
		Species: "Human",
		Level:   4,
		Feats:   []string{"Point-Blank Shot"},
		Classes: []saga.ClassLevel{{ClassID: "scout", Level: 4}},
	}})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestNewValidatesConfig() {
	_, err := progression.New(&progression.Config{})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSuggestFeatures() {
	s.seedCharacter()

	intent := &saga.BuildIntent{CombatStyle: saga.CombatStyleRanged}
	s.mockEngine.EXPECT().
		AnalyzeBuildIntent(gomock.Any(), gomock.Any()).
		Return(&engine.AnalyzeBuildIntentOutput{Intent: intent}, nil)
	s.mockEngine.EXPECT().
		RankFeatures(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *engine.RankFeaturesInput) (*engine.RankFeaturesOutput, error) {
			s.Equal("char-1", input.Snapshot.CharacterID)
			s.Same(intent, input.Intent)
			return &engine.RankFeaturesOutput{
				Ranked: []saga.RankedCandidate{{Name: "Precise Shot"}},
			}, nil
		})

	out, err := s.orch.SuggestFeatures(s.ctx, &progressionsvc.SuggestFeaturesInput{CharacterID: "char-1"})
	s.Require().NoError(err)
	s.Len(out.Suggestions, 1)
	s.Equal("Precise Shot", out.Suggestions[0].Name)
	s.Same(intent, out.Intent)
}

func (s *OrchestratorTestSuite) TestSuggestFeaturesCharacterNotFound() {
	_, err := s.orch.SuggestFeatures(s.ctx, &progressionsvc.SuggestFeaturesInput{CharacterID: "missing"})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestIntentCachedAcrossCalls() {
	s.seedCharacter()

	// Engine analysis runs exactly once; the second call hits the cache.
	s.mockEngine.EXPECT().
		AnalyzeBuildIntent(gomock.Any(), gomock.Any()).
		Return(&engine.AnalyzeBuildIntentOutput{Intent: &saga.BuildIntent{}}, nil).
		Times(1)

	first, err := s.orch.AnalyzeBuildIntent(s.ctx, &progressionsvc.AnalyzeBuildIntentInput{CharacterID: "char-1"})
	s.Require().NoError(err)
	s.False(first.Cached)

	second, err := s.orch.AnalyzeBuildIntent(s.ctx, &progressionsvc.AnalyzeBuildIntentInput{CharacterID: "char-1"})
	s.Require().NoError(err)
	s.True(second.Cached)
}

func (s *OrchestratorTestSuite) TestPendingChangesCacheKey() {
	s.seedCharacter()

	s.mockEngine.EXPECT().
		AnalyzeBuildIntent(gomock.Any(), gomock.Any()).
		Return(&engine.AnalyzeBuildIntentOutput{Intent: &saga.BuildIntent{}}, nil).
		Times(2)

	_, err := s.orch.AnalyzeBuildIntent(s.ctx, &progressionsvc.AnalyzeBuildIntentInput{CharacterID: "char-1"})
	s.Require().NoError(err)

	// A staged pick must not reuse the empty-staging profile
	out, err := s.orch.AnalyzeBuildIntent(s.ctx, &progressionsvc.AnalyzeBuildIntentInput{
		CharacterID: "char-1",
		Pending:     &saga.PendingSelections{Feats: []string{"Precise Shot"}},
	})
	s.Require().NoError(err)
	s.False(out.Cached)
}

func (s *OrchestratorTestSuite) TestCheckPrerequisitesRequiresExactlyOneTarget() {
	_, err := s.orch.CheckPrerequisites(s.ctx, &progressionsvc.CheckPrerequisitesInput{
		CharacterID: "char-1",
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orch.CheckPrerequisites(s.ctx, &progressionsvc.CheckPrerequisitesInput{
		CharacterID: "char-1",
		FeatureName: "Dodge",
		ClassID:     "soldier",
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCheckPrerequisites() {
	s.seedCharacter()

	s.mockEngine.EXPECT().
		CheckCandidate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *engine.CheckCandidateInput) (*engine.CheckCandidateOutput, error) {
			s.Equal("Deadeye", input.FeatureName)
			return &engine.CheckCandidateOutput{
				Satisfied:    false,
				UnmetReasons: []string{"requires base attack bonus +2"},
			}, nil
		})

	out, err := s.orch.CheckPrerequisites(s.ctx, &progressionsvc.CheckPrerequisitesInput{
		CharacterID: "char-1",
		FeatureName: "Deadeye",
	})
	s.Require().NoError(err)
	s.False(out.Satisfied)
	s.Len(out.UnmetReasons, 1)
}

func (s *OrchestratorTestSuite) TestStartSessionInvalidatesCache() {
	s.seedCharacter()

	s.mockEngine.EXPECT().
		AnalyzeBuildIntent(gomock.Any(), gomock.Any()).
		Return(&engine.AnalyzeBuildIntentOutput{Intent: &saga.BuildIntent{}}, nil).
		Times(2)

	_, err := s.orch.AnalyzeBuildIntent(s.ctx, &progressionsvc.AnalyzeBuildIntentInput{CharacterID: "char-1"})
	s.Require().NoError(err)

	out, err := s.orch.StartSession(s.ctx, &progressionsvc.StartSessionInput{CharacterID: "char-1"})
	s.Require().NoError(err)
	s.Equal("session_1", out.SessionID)
	s.Equal("char-1", out.CharacterID)

	// Cache was dropped, so analysis recomputes
	again, err := s.orch.AnalyzeBuildIntent(s.ctx, &progressionsvc.AnalyzeBuildIntentInput{CharacterID: "char-1"})
	s.Require().NoError(err)
	s.False(again.Cached)
}

func (s *OrchestratorTestSuite) TestStartSessionUnknownCharacter() {
	_, err := s.orch.StartSession(s.ctx, &progressionsvc.StartSessionInput{CharacterID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestInvalidateIntent() {
	s.seedCharacter()

	s.mockEngine.EXPECT().
		AnalyzeBuildIntent(gomock.Any(), gomock.Any()).
		Return(&engine.AnalyzeBuildIntentOutput{Intent: &saga.BuildIntent{}}, nil)

	_, err := s.orch.AnalyzeBuildIntent(s.ctx, &progressionsvc.AnalyzeBuildIntentInput{CharacterID: "char-1"})
	s.Require().NoError(err)

	out, err := s.orch.InvalidateIntent(s.ctx, &progressionsvc.InvalidateIntentInput{CharacterID: "char-1"})
	s.Require().NoError(err)
	s.Equal(1, out.Dropped)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
