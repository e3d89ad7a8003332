package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/pancakehouse/backend/internal/config"
	"github.com/pancakehouse/backend/internal/models"
)

const PancakeIndex = "pancakes"

func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ES_URL},
		Username:  cfg.ES_USER,
		Password:  cfg.ES_PASSWORD,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}

	return client, nil
}

// IndexPancake upserts the pancake document keyed by its id.
func IndexPancake(ctx context.Context, client *elasticsearch.Client, index string, p *models.Pancake) error {
	if client == nil {
		return nil
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("index pancake: %w", err)
	}

	res, err := client.Index(
		index,
		bytes.NewReader(body),
		client.Index.WithContext(ctx),
		client.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index pancake: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index pancake: %s", res.Status())
	}
	return nil
}
