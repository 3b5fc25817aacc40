package agent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
	"github.com/untangle-ai/agent-broker/internal/domain/event"
	"github.com/untangle-ai/agent-broker/internal/mocks"
	portembedding "github.com/untangle-ai/agent-broker/internal/port/embedding"
	agentsvc "github.com/untangle-ai/agent-broker/internal/service/agent"
)

type svcDeps struct {
	repo      *mocks.MockAgentRepository
	embedder  *mocks.MockEmbedder
	registrar *mocks.MockRegistrar
	bus       *mocks.MockEventBus
}

func newAgentSvc(t *testing.T) (*agentsvc.Service, svcDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := svcDeps{
		repo:      mocks.NewMockAgentRepository(ctrl),
		embedder:  mocks.NewMockEmbedder(ctrl),
		registrar: mocks.NewMockRegistrar(ctrl),
		bus:       mocks.NewMockEventBus(ctrl),
	}
	svc := agentsvc.NewService(d.repo, d.embedder, d.registrar, d.bus)
	return svc, d
}

func createInput() agentsvc.CreateInput {
	return agentsvc.CreateInput{
		Name:        "summarizer",
		Description: "summarizes long documents",
		DeployedURL: "https://agent.example.com",
		LLMProvider: "google",
		Skills:      []string{"summarization"},
		AgentCost:   "1",
		Framework:   domainagent.FrameworkGoogleADK,
		OwnerWallet: "0xowner",
	}
}

func TestCreate(t *testing.T) {
	svc, d := newAgentSvc(t)
	ctx := context.Background()
	ownerID := uuid.New()
	in := createInput()
	embedding := []float64{0.1, 0.2, 0.3}

	d.embedder.EXPECT().Embed(ctx, in.Description).Return(embedding, nil)
	d.repo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a domainagent.Agent) (domainagent.Agent, error) {
			assert.Equal(t, ownerID, a.OwnerID)
			assert.Equal(t, embedding, a.Embedding)
			assert.Equal(t, "0xowner", a.OwnerWallet)
			return a, nil
		})
	d.registrar.EXPECT().RegisterAgent(ctx, in.DeployedURL, gomock.Any(), ownerID.String()).
		Return("0xtx", nil)
	d.bus.EXPECT().Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e event.Event) error {
			assert.Equal(t, event.TypeAgentCreated, e.Type)
			return nil
		})

	created, err := svc.Create(ctx, ownerID, in)
	require.NoError(t, err)
	assert.Equal(t, in.Name, created.Name)
}

func TestCreateEmbeddingFailureAborts(t *testing.T) {
	svc, d := newAgentSvc(t)
	ctx := context.Background()
	in := createInput()

	d.embedder.EXPECT().Embed(ctx, in.Description).Return(nil, portembedding.ErrUnavailable)
	// No repo.Create: an agent without a vector would be invisible to ranking.

	_, err := svc.Create(ctx, uuid.New(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, portembedding.ErrUnavailable))
}

func TestUpdateReembedsOnDescriptionChange(t *testing.T) {
	svc, d := newAgentSvc(t)
	ctx := context.Background()
	ownerID := uuid.New()
	existing := domainagent.Agent{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Description: "old description",
		Embedding:   []float64{1, 0},
	}
	newDesc := "new description"
	newEmbedding := []float64{0, 1}

	d.repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
	d.embedder.EXPECT().Embed(ctx, newDesc).Return(newEmbedding, nil)
	d.repo.EXPECT().Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a domainagent.Agent) (domainagent.Agent, error) {
			assert.Equal(t, newDesc, a.Description)
			assert.Equal(t, newEmbedding, a.Embedding)
			return a, nil
		})
	d.bus.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	_, err := svc.Update(ctx, ownerID, existing.ID, agentsvc.UpdateInput{Description: &newDesc})
	require.NoError(t, err)
}

func TestUpdateSkipsReembedWhenDescriptionUnchanged(t *testing.T) {
	svc, d := newAgentSvc(t)
	ctx := context.Background()
	ownerID := uuid.New()
	existing := domainagent.Agent{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Description: "same",
		Embedding:   []float64{1, 0},
	}
	name := "renamed"

	d.repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
	// No Embed expectation: unchanged description keeps the stored vector.
	d.repo.EXPECT().Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a domainagent.Agent) (domainagent.Agent, error) {
			assert.Equal(t, []float64{1, 0}, a.Embedding)
			return a, nil
		})
	d.bus.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	_, err := svc.Update(ctx, ownerID, existing.ID, agentsvc.UpdateInput{Name: &name})
	require.NoError(t, err)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	svc, d := newAgentSvc(t)
	ctx := context.Background()
	existing := domainagent.Agent{ID: uuid.New(), OwnerID: uuid.New()}
	name := "hijacked"

	d.repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)

	_, err := svc.Update(ctx, uuid.New(), existing.ID, agentsvc.UpdateInput{Name: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, agentsvc.ErrNotOwner))
}

func TestDelete(t *testing.T) {
	svc, d := newAgentSvc(t)
	ctx := context.Background()
	ownerID := uuid.New()
	existing := domainagent.Agent{ID: uuid.New(), OwnerID: ownerID}

	d.repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
	d.repo.EXPECT().Delete(ctx, existing.ID).Return(nil)
	d.bus.EXPECT().Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e event.Event) error {
			assert.Equal(t, event.TypeAgentDeleted, e.Type)
			return nil
		})

	require.NoError(t, svc.Delete(ctx, ownerID, existing.ID))
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	svc, d := newAgentSvc(t)
	ctx := context.Background()
	existing := domainagent.Agent{ID: uuid.New(), OwnerID: uuid.New()}

	d.repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)

	err := svc.Delete(ctx, uuid.New(), existing.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, agentsvc.ErrNotOwner))
}
