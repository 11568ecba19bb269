package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/shop-assistant/config"
	"github.com/niksmo/shop-assistant/internal/adapter/catalog"
	"github.com/niksmo/shop-assistant/internal/adapter/generative"
	"github.com/niksmo/shop-assistant/internal/adapter/httphandler"
	"github.com/niksmo/shop-assistant/internal/adapter/kafka"
	"github.com/niksmo/shop-assistant/internal/adapter/storage"
	"github.com/niksmo/shop-assistant/internal/core/assistant"
	"github.com/niksmo/shop-assistant/internal/core/port"
	"github.com/niksmo/shop-assistant/internal/core/service"
	"github.com/niksmo/shop-assistant/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	profiles   port.ProfileStorage
	events     port.ChatEventsProducer
	httpServer httphandler.HTTPServer
	closers    []func()
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initProfileStorage()
	app.initChatEventsProducer()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initProfileStorage() {
	const op = "App.initProfileStorage"

	if app.cfg.SQLDB == "" {
		app.profiles = storage.NewMemoryProfiles()
		return
	}

	repo, err := storage.NewProfilesRepository(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.profiles = repo
	app.closers = append(app.closers, repo.Close)
}

func (app *App) initChatEventsProducer() {
	const op = "App.initChatEventsProducer"

	seedBrokers := app.cfg.Broker.SeedBrokers
	if len(seedBrokers) == 0 {
		return
	}

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	schemaCreater := schema.NewSchemaCreater(srClient)

	topic := app.cfg.Broker.Topics.ChatEvents
	serde, err := schema.NewSerdeChatEventV1(
		app.ctx,
		schema.SubjectOpt(topic+"-value"),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewChatEventsProducer(
		kafka.ProducerClientOpt(app.ctx, seedBrokers, topic),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.events = producer
	app.closers = append(app.closers, producer.Close)
}

func (app *App) initInboundAdapters() {
	const op = "App.initInboundAdapters"

	store, err := catalog.New()
	if err != nil {
		app.fallDown(op, err)
	}

	var generator port.Generator
	if g := app.cfg.Generative; g.Enabled {
		generator = generative.New(g.BaseURL, g.APIKey, g.Model)
	}

	s := service.New(
		store,
		assistant.NewClassifier(app.cfg.Assistant.DefaultProductID),
		assistant.NewComposer(),
		app.profiles,
		app.events,
		generator,
		service.VariantPolicy(app.cfg.Catalog.UnknownVariant),
	)

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, s)
	httphandler.RegisterAssistant(mux, s)
	httphandler.RegisterUser(mux, s)

	handler := httphandler.CORS(httphandler.Recover(mux))
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	for _, closeFn := range app.closers {
		closeFn()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
