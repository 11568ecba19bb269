package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
	"github.com/niksmo/shop-assistant/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ChatEventsProducer = (*ChatEventsProducer)(nil)

// A ChatEventsProducer emits one analytics record per processed prompt,
// keyed by session so a consumer sees each conversation in order.
type ChatEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewChatEventsProducer(opts ...ProducerOpt) (ChatEventsProducer, error) {
	const op = "NewChatEventsProducer"

	if len(opts) != 2 {
		panic(fmt.Errorf("%s: %w", op, ErrTooFewOpts)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ChatEventsProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return ChatEventsProducer{options.cl, options.encoder}, nil
}

func (p ChatEventsProducer) Close() {
	const op = "ChatEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ChatEventsProducer) ProduceEvent(
	ctx context.Context, e domain.ChatEvent,
) error {
	const op = "ChatEventsProducer.ProduceEvent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r, err := p.createRecord(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p ChatEventsProducer) createRecord(
	e domain.ChatEvent,
) (*kgo.Record, error) {
	const op = "ChatEventsProducer.createRecord"

	s := p.toSchema(e)
	v, err := p.encoder.Encode(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &kgo.Record{Key: []byte(s.Session), Value: v}, nil
}

func (ChatEventsProducer) toSchema(e domain.ChatEvent) (s schema.ChatEventV1) {
	s.EventID = e.EventID
	s.Session = e.Session
	s.Storefront = string(e.Variant)
	s.Prompt = e.Prompt
	s.Intent = string(e.Intent)
	s.Outcome = string(e.Outcome)
	s.ProductID = e.ProductID
	s.UnixMs = e.CreatedAt.UnixMilli()
	return s
}
