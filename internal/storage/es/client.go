package es

import (
	"github.com/DjordjeVuckovic/rankeval/pkg/utils"
	"github.com/elastic/go-elasticsearch/v8"
)

const DefaultIndexName = "eval_runs"

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: utils.TrimNonEmpty(config.Addresses),
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}
