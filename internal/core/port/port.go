package port

import (
	"context"

	"github.com/niksmo/shop-assistant/internal/core/domain"
)

// Catalog is the read side of the static product catalog.
type Catalog interface {
	Categories(v domain.Variant) []domain.Category
	Query(v domain.Variant, q domain.ProductQuery) []domain.Product
	FindByID(v domain.Variant, id string) (domain.Product, error)
	Recommended(v domain.Variant, n int) []domain.Product
}

// Classifier maps raw prompt text onto one classification outcome.
type Classifier interface {
	Classify(text string, p domain.Profile, v domain.Variant) domain.Classification
}

// Composer turns a classification into the canned reply.
type Composer interface {
	Compose(c domain.Classification, p domain.Profile, v domain.Variant) domain.Reply
}

// ProfileStorage keeps per-session shopper profiles.
type ProfileStorage interface {
	Profile(ctx context.Context, session string) (domain.Profile, error)
	SaveProfile(ctx context.Context, session string, p domain.Profile) error
	ResetProfile(ctx context.Context, session string) error
}

// ChatEventsProducer emits analytics events for processed prompts.
type ChatEventsProducer interface {
	ProduceEvent(ctx context.Context, e domain.ChatEvent) error
}

// Generator is the optional external generative-model path.
type Generator interface {
	Generate(ctx context.Context, prompt string, p domain.Profile, v domain.Variant) (domain.Reply, error)
}

// CatalogProvider serves the catalog endpoints.
type CatalogProvider interface {
	Categories(ctx context.Context, variant string) ([]domain.Category, error)
	Products(ctx context.Context, variant string, q domain.ProductQuery) ([]domain.Product, error)
	Product(ctx context.Context, variant, id string) (domain.Product, error)
	Recommended(ctx context.Context, variant string) ([]domain.Product, error)
}

// Prompter serves the assistant endpoint.
type Prompter interface {
	Prompt(ctx context.Context, session, variant, text, nameHint string) (domain.Reply, error)
}

// ProfileProvider serves the user-profile endpoints.
type ProfileProvider interface {
	Profile(ctx context.Context, session string) (domain.Profile, error)
	SetName(ctx context.Context, session, name string) (domain.Profile, error)
	Reset(ctx context.Context, session string) (domain.Profile, error)
}
