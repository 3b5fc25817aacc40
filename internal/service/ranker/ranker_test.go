package ranker_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
	"github.com/untangle-ai/agent-broker/internal/domain/broker"
	"github.com/untangle-ai/agent-broker/internal/mocks"
	portembedding "github.com/untangle-ai/agent-broker/internal/port/embedding"
	rankersvc "github.com/untangle-ai/agent-broker/internal/service/ranker"
)

func newRankerSvc(t *testing.T) (*rankersvc.Service, *mocks.MockPoolReader, *mocks.MockEmbedder) {
	t.Helper()
	ctrl := gomock.NewController(t)
	pool := mocks.NewMockPoolReader(ctrl)
	embedder := mocks.NewMockEmbedder(ctrl)
	return rankersvc.NewService(pool, embedder), pool, embedder
}

func candidate(name string, embedding []float64) domainagent.Agent {
	return domainagent.Agent{
		ID:        uuid.New(),
		Name:      name,
		Embedding: embedding,
		IsActive:  true,
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 1},
		{name: "opposite", a: []float64{1, 0}, b: []float64{-1, 0}, want: -1},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
		{name: "scaled copy still identical direction", a: []float64{1, 1}, b: []float64{5, 5}, want: 1},
		{name: "empty left", a: nil, b: []float64{1}, want: 0},
		{name: "empty right", a: []float64{1}, b: nil, want: 0},
		{name: "length mismatch", a: []float64{1, 2}, b: []float64{1}, want: 0},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 2}, want: 0},
		{name: "nan component", a: []float64{math.NaN(), 1}, b: []float64{1, 1}, want: 0},
		{name: "inf component", a: []float64{math.Inf(1), 1}, b: []float64{1, 1}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rankersvc.CosineSimilarity(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.False(t, math.IsNaN(got))
		})
	}
}

func TestRankOrdering(t *testing.T) {
	svc, pool, embedder := newRankerSvc(t)
	ctx := context.Background()

	req := broker.Requirement{
		Description:          "summarize legal contracts",
		PreferredLLMProvider: "google",
		MaxAgentCost:         1.0,
		Skills:               []string{"summarization"},
	}

	// Semantically close but no heuristic matches.
	closeFit := candidate("close-fit", []float64{1, 0})

	// Semantically distant but wins every heuristic: 0.2 + 0.2 + 0.1 < 1.0,
	// so the semantic term still dominates.
	heuristicFit := candidate("heuristic-fit", []float64{0, 1})
	heuristicFit.LLMProvider = "google"
	heuristicFit.Skills = []string{"summarization"}
	heuristicFit.AgentCost = "0.5"

	embedder.EXPECT().Embed(ctx, req.Description).Return([]float64{1, 0}, nil)
	pool.EXPECT().ListActive(ctx, 15).Return([]domainagent.Agent{heuristicFit, closeFit}, nil)

	ranked, err := svc.Rank(ctx, req, 5)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "close-fit", ranked[0].Name)
	assert.Equal(t, "heuristic-fit", ranked[1].Name)
}

func TestRankHeuristicsBreakSemanticTies(t *testing.T) {
	svc, pool, embedder := newRankerSvc(t)
	ctx := context.Background()

	req := broker.Requirement{
		Description:          "translate documents",
		PreferredLLMProvider: "openai",
		MaxAgentCost:         2.0,
		Skills:               []string{"translation", "ocr"},
	}

	plain := candidate("plain", []float64{1, 0})

	full := candidate("full-match", []float64{1, 0})
	full.LLMProvider = "openai"
	full.Skills = []string{"translation", "ocr"}
	full.AgentCost = "1.0"

	half := candidate("half-skills", []float64{1, 0})
	half.Skills = []string{"translation"}

	embedder.EXPECT().Embed(ctx, req.Description).Return([]float64{1, 0}, nil)
	pool.EXPECT().ListActive(ctx, 9).Return([]domainagent.Agent{plain, half, full}, nil)

	ranked, err := svc.Rank(ctx, req, 3)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "full-match", ranked[0].Name)
	assert.Equal(t, "half-skills", ranked[1].Name)
	assert.Equal(t, "plain", ranked[2].Name)
}

func TestRankTruncatesToTopN(t *testing.T) {
	svc, pool, embedder := newRankerSvc(t)
	ctx := context.Background()
	req := broker.Requirement{Description: "anything"}

	agents := []domainagent.Agent{
		candidate("a", []float64{1, 0}),
		candidate("b", []float64{0.9, 0.1}),
		candidate("c", []float64{0, 1}),
	}

	embedder.EXPECT().Embed(ctx, req.Description).Return([]float64{1, 0}, nil)
	pool.EXPECT().ListActive(ctx, 6).Return(agents, nil)

	ranked, err := svc.Rank(ctx, req, 2)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestRankStableOnExactTies(t *testing.T) {
	svc, pool, embedder := newRankerSvc(t)
	ctx := context.Background()
	req := broker.Requirement{Description: "anything"}

	// Identical embeddings, identical heuristics: pool order must survive.
	first := candidate("first", []float64{1, 1})
	second := candidate("second", []float64{1, 1})

	embedder.EXPECT().Embed(ctx, req.Description).Return([]float64{1, 1}, nil)
	pool.EXPECT().ListActive(ctx, 6).Return([]domainagent.Agent{first, second}, nil)

	ranked, err := svc.Rank(ctx, req, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "first", ranked[0].Name)
	assert.Equal(t, "second", ranked[1].Name)
}

func TestRankEmptyPool(t *testing.T) {
	svc, pool, embedder := newRankerSvc(t)
	ctx := context.Background()
	req := broker.Requirement{Description: "anything"}

	embedder.EXPECT().Embed(ctx, req.Description).Return([]float64{1}, nil)
	pool.EXPECT().ListActive(ctx, 15).Return([]domainagent.Agent{}, nil)

	ranked, err := svc.Rank(ctx, req, 5)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankZeroTopN(t *testing.T) {
	svc, _, _ := newRankerSvc(t)

	ranked, err := svc.Rank(context.Background(), broker.Requirement{}, 0)
	require.NoError(t, err)
	assert.Nil(t, ranked)
}

func TestRankEmbedderFailure(t *testing.T) {
	svc, _, embedder := newRankerSvc(t)
	ctx := context.Background()
	req := broker.Requirement{Description: "anything"}

	embedder.EXPECT().Embed(ctx, req.Description).
		Return(nil, portembedding.ErrUnavailable)

	_, err := svc.Rank(ctx, req, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, portembedding.ErrUnavailable))
}

func TestRankPoolFailure(t *testing.T) {
	svc, pool, embedder := newRankerSvc(t)
	ctx := context.Background()
	req := broker.Requirement{Description: "anything"}

	embedder.EXPECT().Embed(ctx, req.Description).Return([]float64{1}, nil)
	pool.EXPECT().ListActive(ctx, 15).Return(nil, errors.New("db down"))

	_, err := svc.Rank(ctx, req, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list candidate pool")
}

func TestRankMalformedCandidateNeverPoisons(t *testing.T) {
	svc, pool, embedder := newRankerSvc(t)
	ctx := context.Background()
	req := broker.Requirement{Description: "anything", MaxAgentCost: 1}

	good := candidate("good", []float64{1, 0})

	bad := candidate("bad", []float64{math.NaN(), math.Inf(1)})
	bad.AgentCost = "not-a-number"

	embedder.EXPECT().Embed(ctx, req.Description).Return([]float64{1, 0}, nil)
	pool.EXPECT().ListActive(ctx, 6).Return([]domainagent.Agent{bad, good}, nil)

	ranked, err := svc.Rank(ctx, req, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "good", ranked[0].Name)
}
