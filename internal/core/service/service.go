package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
)

var _ port.CatalogProvider = (*Service)(nil)
var _ port.Prompter = (*Service)(nil)
var _ port.ProfileProvider = (*Service)(nil)

const recommendedCount = 4

// A VariantPolicy decides what an unknown storefront selector means.
type VariantPolicy string

const (
	// VariantPolicyDefault silently serves the default storefront.
	VariantPolicyDefault VariantPolicy = "default"
	// VariantPolicyReject answers unknown selectors with an error.
	VariantPolicyReject VariantPolicy = "reject"
)

type Service struct {
	catalog       port.Catalog
	classifier    port.Classifier
	composer      port.Composer
	profiles      port.ProfileStorage
	events        port.ChatEventsProducer // optional
	generator     port.Generator          // optional
	variantPolicy VariantPolicy
}

func New(
	catalog port.Catalog,
	classifier port.Classifier,
	composer port.Composer,
	profiles port.ProfileStorage,
	events port.ChatEventsProducer,
	generator port.Generator,
	variantPolicy VariantPolicy,
) Service {
	return Service{
		catalog:       catalog,
		classifier:    classifier,
		composer:      composer,
		profiles:      profiles,
		events:        events,
		generator:     generator,
		variantPolicy: variantPolicy,
	}
}

// resolveVariant applies the configured unknown-variant policy.
func (s Service) resolveVariant(variant string) (domain.Variant, error) {
	if v, ok := domain.ParseVariant(variant); ok {
		return v, nil
	}
	if s.variantPolicy == VariantPolicyReject {
		return "", fmt.Errorf("%q: %w", variant, domain.ErrUnknownVariant)
	}
	return domain.DefaultVariant, nil
}

func (s Service) Categories(
	ctx context.Context, variant string,
) ([]domain.Category, error) {
	const op = "Service.Categories"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	v, err := s.resolveVariant(variant)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.catalog.Categories(v), nil
}

func (s Service) Products(
	ctx context.Context, variant string, q domain.ProductQuery,
) ([]domain.Product, error) {
	const op = "Service.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	v, err := s.resolveVariant(variant)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.catalog.Query(v, q), nil
}

func (s Service) Product(
	ctx context.Context, variant, id string,
) (domain.Product, error) {
	const op = "Service.Product"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	v, err := s.resolveVariant(variant)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.catalog.FindByID(v, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s Service) Recommended(
	ctx context.Context, variant string,
) ([]domain.Product, error) {
	const op = "Service.Recommended"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	v, err := s.resolveVariant(variant)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.catalog.Recommended(v, recommendedCount), nil
}

// Prompt runs one chat turn: classify, compose, mutate the session
// profile and emit the analytics event. The generative path, when
// configured, is tried first; its failure falls back to the
// pattern-matching composer so the endpoint never hard-fails.
func (s Service) Prompt(
	ctx context.Context, session, variant, text, nameHint string,
) (domain.Reply, error) {
	const op = "Service.Prompt"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Reply{}, fmt.Errorf("%s: %w", op, err)
	}

	v, err := s.resolveVariant(variant)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("%s: %w", op, err)
	}

	profile, err := s.profiles.Profile(ctx, session)
	if err != nil {
		log.Warn("failed to load profile, using fresh one", "err", err)
		profile = domain.NewProfile()
	}
	if nameHint != "" && !profile.Known() {
		profile.Name = nameHint
		profile.IsNewUser = false
	}
	profile.ConversationCount++

	cls := s.classifier.Classify(text, profile, v)

	reply, generated := s.tryGenerate(ctx, text, profile, v)
	if !generated {
		reply = s.composer.Compose(cls, profile, v)
	}

	if cls.Name != "" {
		profile.Name = cls.Name
		profile.IsNewUser = false
		reply.UserName = cls.Name
	}

	if err := s.profiles.SaveProfile(ctx, session, profile); err != nil {
		log.Error("failed to save profile", "err", err)
	}

	s.emitEvent(ctx, session, v, text, cls)

	return reply, nil
}

func (s Service) tryGenerate(
	ctx context.Context, text string, profile domain.Profile, v domain.Variant,
) (domain.Reply, bool) {
	const op = "Service.tryGenerate"

	if s.generator == nil {
		return domain.Reply{}, false
	}

	reply, err := s.generator.Generate(ctx, text, profile, v)
	if err != nil {
		slog.Warn(
			"generative path failed, falling back to patterns",
			"op", op, "err", err,
		)
		return domain.Reply{}, false
	}
	return reply, true
}

func (s Service) emitEvent(
	ctx context.Context,
	session string,
	v domain.Variant,
	text string,
	cls domain.Classification,
) {
	const op = "Service.emitEvent"

	if s.events == nil {
		return
	}

	e := domain.ChatEvent{
		EventID:   uuid.NewString(),
		Session:   session,
		Variant:   v,
		Prompt:    text,
		Intent:    cls.Intent,
		Outcome:   cls.Outcome,
		ProductID: cls.Product.ProductID,
		CreatedAt: time.Now(),
	}
	if err := s.events.ProduceEvent(ctx, e); err != nil {
		slog.Error("failed to produce chat event", "op", op, "err", err)
	}
}

func (s Service) Profile(
	ctx context.Context, session string,
) (domain.Profile, error) {
	const op = "Service.Profile"

	if err := ctx.Err(); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.profiles.Profile(ctx, session)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

var ErrInvalidName = fmt.Errorf("valid name is required")

func (s Service) SetName(
	ctx context.Context, session, name string,
) (domain.Profile, error) {
	const op = "Service.SetName"

	if err := ctx.Err(); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, ErrInvalidName)
	}

	p, err := s.profiles.Profile(ctx, session)
	if err != nil {
		p = domain.NewProfile()
	}
	p.Name = name
	p.IsNewUser = false

	if err := s.profiles.SaveProfile(ctx, session, p); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s Service) Reset(
	ctx context.Context, session string,
) (domain.Profile, error) {
	const op = "Service.Reset"

	if err := ctx.Err(); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.profiles.ResetProfile(ctx, session); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.NewProfile(), nil
}
