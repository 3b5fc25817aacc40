package ranker

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
	"github.com/untangle-ai/agent-broker/internal/domain/broker"
	portagent "github.com/untangle-ai/agent-broker/internal/port/agent"
	portembedding "github.com/untangle-ai/agent-broker/internal/port/embedding"
	portranker "github.com/untangle-ai/agent-broker/internal/port/ranker"
)

// Score weights. Semantic similarity dominates; the heuristics nudge ties.
const (
	weightSemantic = 1.0
	weightProvider = 0.2
	weightSkills   = 0.2
	weightCost     = 0.1
)

// overFetchFactor is headroom for post-scoring truncation: the pool read
// returns topN*overFetchFactor raw candidates. Tunable, not a contract.
const overFetchFactor = 3

var _ portranker.Ranker = (*Service)(nil)

// Service ranks the active agent pool against a caller requirement.
// It holds no state between calls; every Rank is independent.
type Service struct {
	pool     portagent.PoolReader
	embedder portembedding.Embedder
}

func NewService(pool portagent.PoolReader, embedder portembedding.Embedder) *Service {
	return &Service{pool: pool, embedder: embedder}
}

type scoredCandidate struct {
	agent domainagent.Agent
	score float64
}

// Rank embeds the requirement description, scores every candidate, and
// returns at most topN agents in descending score order. Exact ties keep
// their pool order. An empty pool yields an empty result, not an error.
func (s *Service) Rank(ctx context.Context, req broker.Requirement, topN int) ([]domainagent.Agent, error) {
	if topN <= 0 {
		return nil, nil
	}

	// No ranking without a usable text representation.
	reqEmbedding, err := s.embedder.Embed(ctx, req.Description)
	if err != nil {
		return nil, fmt.Errorf("embed requirement: %w", err)
	}

	pool, err := s.pool.ListActive(ctx, topN*overFetchFactor)
	if err != nil {
		return nil, fmt.Errorf("list candidate pool: %w", err)
	}

	scored := make([]scoredCandidate, 0, len(pool))
	for _, a := range pool {
		scored = append(scored, scoredCandidate{agent: a, score: score(req, reqEmbedding, a)})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	if len(scored) > topN {
		scored = scored[:topN]
	}
	ranked := make([]domainagent.Agent, len(scored))
	for i, c := range scored {
		ranked[i] = c.agent
	}
	return ranked, nil
}

// score computes 1.0*semantic + 0.2*provider + 0.2*skills + 0.1*cost.
// Every component is NaN-guarded so a single bad input never poisons the sum.
func score(req broker.Requirement, reqEmbedding []float64, a domainagent.Agent) float64 {
	semantic := CosineSimilarity(reqEmbedding, a.Embedding)

	provider := 0.0
	if a.LLMProvider != "" && req.PreferredLLMProvider != "" && a.LLMProvider == req.PreferredLLMProvider {
		provider = 1.0
	}

	skills := a.SkillOverlap(req.Skills)

	cost := 0.0
	if parsed, err := strconv.ParseFloat(a.AgentCost, 64); err == nil {
		if !math.IsNaN(parsed) && !math.IsInf(parsed, 0) && parsed >= 0 && parsed <= req.MaxAgentCost {
			cost = 1.0
		}
	}

	return weightSemantic*nanGuard(semantic) +
		weightProvider*nanGuard(provider) +
		weightSkills*nanGuard(skills) +
		weightCost*nanGuard(cost)
}

// CosineSimilarity is dot(a,b) / (|a|*|b|), clamped to [-1, 1]. It returns 0
// for empty or mismatched-length vectors, zero vectors, and any non-finite
// component — it never returns NaN and never panics.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		if !isFinite(a[i]) || !isFinite(b[i]) {
			return 0
		}
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	result := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(result) {
		return 0
	}
	return math.Max(-1, math.Min(1, result))
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func nanGuard(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}
