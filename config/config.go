package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "SHOPD_CONFIG_FILE"

type topics struct {
	ChatEvents string `mapstructure:"chat_events"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
}

type catalog struct {
	// UnknownVariant is "default" (fall back to the angular storefront)
	// or "reject" (answer 400).
	UnknownVariant string `mapstructure:"unknown_variant"`
}

type assistant struct {
	DefaultProductID string `mapstructure:"default_product_id"`
}

type generative struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	Catalog        catalog    `mapstructure:"catalog"`
	Assistant      assistant  `mapstructure:"assistant"`
	Generative     generative `mapstructure:"generative"`
	Broker         broker     `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())
	viper.SetDefault("catalog.unknown_variant", "default")
	viper.SetDefault("assistant.default_product_id", "6631")

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q

	Catalog:
	UnknownVariant=%q

	Assistant:
	DefaultProductID=%q

	Generative:
	Enabled=%v
	BaseURL=%q
	Model=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		ChatEvents=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.Catalog.UnknownVariant,
		c.Assistant.DefaultProductID,
		c.Generative.Enabled,
		c.Generative.BaseURL,
		c.Generative.Model,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.ChatEvents,
	)
}
