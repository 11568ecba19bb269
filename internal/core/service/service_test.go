package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/niksmo/shop-assistant/internal/adapter/catalog"
	"github.com/niksmo/shop-assistant/internal/adapter/storage"
	"github.com/niksmo/shop-assistant/internal/core/assistant"
	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
	"github.com/niksmo/shop-assistant/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChatEventsProducer struct {
	mock.Mock
}

func (m *MockChatEventsProducer) ProduceEvent(
	ctx context.Context, e domain.ChatEvent,
) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(
	ctx context.Context, prompt string, p domain.Profile, v domain.Variant,
) (domain.Reply, error) {
	args := m.Called(ctx, prompt, p, v)
	return args.Get(0).(domain.Reply), args.Error(1)
}

func newService(
	t *testing.T,
	events port.ChatEventsProducer,
	generator port.Generator,
	policy service.VariantPolicy,
) (service.Service, *storage.MemoryProfiles) {
	t.Helper()

	c, err := catalog.New()
	require.NoError(t, err)

	profiles := storage.NewMemoryProfiles()
	s := service.New(
		c,
		assistant.NewClassifier("6631"),
		assistant.NewComposer(),
		profiles,
		events,
		generator,
		policy,
	)
	return s, profiles
}

func TestVariantPolicy(t *testing.T) {
	t.Run("DefaultPolicyServesAngular", func(t *testing.T) {
		s, _ := newService(t, nil, nil, service.VariantPolicyDefault)

		p, err := s.Product(t.Context(), "vue", "6631")
		require.NoError(t, err)
		assert.Equal(t, "Angular T-shirt", p.Name)
	})

	t.Run("RejectPolicyErrors", func(t *testing.T) {
		s, _ := newService(t, nil, nil, service.VariantPolicyReject)

		_, err := s.Product(t.Context(), "vue", "6631")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownVariant)
	})

	t.Run("KnownVariantAlwaysServed", func(t *testing.T) {
		s, _ := newService(t, nil, nil, service.VariantPolicyReject)

		cs, err := s.Categories(t.Context(), "react")
		require.NoError(t, err)
		assert.NotEmpty(t, cs)
	})
}

func TestRecommended(t *testing.T) {
	s, _ := newService(t, nil, nil, service.VariantPolicyDefault)

	ps, err := s.Recommended(t.Context(), "angular")
	require.NoError(t, err)
	assert.Len(t, ps, 4)
}

func TestPrompt(t *testing.T) {
	t.Run("NameIsExtractedAndPersisted", func(t *testing.T) {
		s, _ := newService(t, nil, nil, service.VariantPolicyDefault)

		reply, err := s.Prompt(t.Context(), "s1", "angular", "Me llamo Carlos", "")
		require.NoError(t, err)
		assert.Equal(t, "Carlos", reply.UserName)
		assert.Contains(t, reply.Message, "Carlos")

		p, err := s.Profile(t.Context(), "s1")
		require.NoError(t, err)
		assert.Equal(t, "Carlos", p.Name)
		assert.False(t, p.IsNewUser)
	})

	t.Run("ConversationCountIncrements", func(t *testing.T) {
		s, profiles := newService(t, nil, nil, service.VariantPolicyDefault)

		for range 3 {
			_, err := s.Prompt(t.Context(), "s1", "angular", "hola", "")
			require.NoError(t, err)
		}

		p, err := profiles.Profile(t.Context(), "s1")
		require.NoError(t, err)
		assert.Equal(t, 3, p.ConversationCount)
	})

	t.Run("NameHintSeedsProfile", func(t *testing.T) {
		s, _ := newService(t, nil, nil, service.VariantPolicyDefault)

		reply, err := s.Prompt(t.Context(), "s1", "angular", "hola", "Ana")
		require.NoError(t, err)
		assert.Contains(t, reply.Message, "Ana")

		p, err := s.Profile(t.Context(), "s1")
		require.NoError(t, err)
		assert.Equal(t, "Ana", p.Name)
	})

	t.Run("PurchaseAttachesAction", func(t *testing.T) {
		s, profiles := newService(t, nil, nil, service.VariantPolicyDefault)
		require.NoError(t, profiles.SaveProfile(
			t.Context(), "s1", domain.Profile{Name: "Ana"},
		))

		reply, err := s.Prompt(t.Context(), "s1", "angular", "quiero una camiseta", "")
		require.NoError(t, err)
		require.NotNil(t, reply.Action)
		assert.Equal(t, domain.ActionAddToCart, reply.Action.Type)
		assert.Equal(t, "6631", reply.Action.Params.ProductID)
		assert.Equal(t, 1, reply.Action.Params.Quantity)
	})

	t.Run("EventIsEmitted", func(t *testing.T) {
		events := new(MockChatEventsProducer)
		events.On("ProduceEvent", mock.Anything, mock.MatchedBy(
			func(e domain.ChatEvent) bool {
				return e.Session == "s1" &&
					e.Variant == domain.VariantAngular &&
					e.Prompt == "hola" &&
					e.EventID != ""
			},
		)).Return(nil)

		s, _ := newService(t, events, nil, service.VariantPolicyDefault)

		_, err := s.Prompt(t.Context(), "s1", "angular", "hola", "")
		require.NoError(t, err)
		events.AssertExpectations(t)
	})

	t.Run("ProduceFailureDoesNotFailPrompt", func(t *testing.T) {
		events := new(MockChatEventsProducer)
		events.On("ProduceEvent", mock.Anything, mock.Anything).
			Return(errors.New("broker down"))

		s, _ := newService(t, events, nil, service.VariantPolicyDefault)

		_, err := s.Prompt(t.Context(), "s1", "angular", "hola", "")
		assert.NoError(t, err)
	})

	t.Run("GeneratorReplyIsPreferred", func(t *testing.T) {
		generator := new(MockGenerator)
		generator.On("Generate", mock.Anything, "hola", mock.Anything, domain.VariantAngular).
			Return(domain.Reply{Message: "generated"}, nil)

		s, _ := newService(t, nil, generator, service.VariantPolicyDefault)

		reply, err := s.Prompt(t.Context(), "s1", "angular", "hola", "")
		require.NoError(t, err)
		assert.Equal(t, "generated", reply.Message)
	})

	t.Run("GeneratorFailureFallsBackToComposer", func(t *testing.T) {
		generator := new(MockGenerator)
		generator.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(domain.Reply{}, errors.New("unavailable"))

		s, _ := newService(t, nil, generator, service.VariantPolicyDefault)

		reply, err := s.Prompt(t.Context(), "s1", "angular", "hola", "")
		require.NoError(t, err)
		assert.NotEmpty(t, reply.Message)
	})
}

func TestSetName(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s, _ := newService(t, nil, nil, service.VariantPolicyDefault)

		p, err := s.SetName(t.Context(), "s1", "  Carlos  ")
		require.NoError(t, err)
		assert.Equal(t, "Carlos", p.Name)
		assert.False(t, p.IsNewUser)
	})

	t.Run("Empty", func(t *testing.T) {
		s, _ := newService(t, nil, nil, service.VariantPolicyDefault)

		_, err := s.SetName(t.Context(), "s1", "   ")
		assert.ErrorIs(t, err, service.ErrInvalidName)
	})
}

func TestReset(t *testing.T) {
	s, profiles := newService(t, nil, nil, service.VariantPolicyDefault)
	require.NoError(t, profiles.SaveProfile(
		t.Context(), "s1", domain.Profile{Name: "Carlos", ConversationCount: 7},
	))

	p, err := s.Reset(t.Context(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.NewProfile(), p)

	stored, err := profiles.Profile(t.Context(), "s1")
	require.NoError(t, err)
	assert.True(t, stored.IsNewUser)
}
