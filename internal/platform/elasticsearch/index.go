// File: internal/platform/elasticsearch/index.go
package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// FoodsIndexName is the index holding the searchable food listing mirror.
const FoodsIndexName = "foods"

const foodsIndexMapping = `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "food_name_analyzer": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase", "asciifolding"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "food_name":       { "type": "text", "analyzer": "food_name_analyzer" },
      "food_status":     { "type": "keyword" },
      "donator_email":   { "type": "keyword" },
      "pickup_location": { "type": "text" },
      "food_quantity":   { "type": "integer" },
      "expired_date_time": { "type": "date" },
      "created_at":      { "type": "date" }
    }
  }
}`

// CreateFoodsIndexIfNotExists ensures the foods index exists with the
// expected mapping. Safe to call on every startup.
func (w *ESClientWrapper) CreateFoodsIndexIfNotExists(ctx context.Context) error {
	if w == nil || w.Client == nil {
		return nil
	}

	res, err := w.Client.Indices.Exists(
		[]string{FoodsIndexName},
		w.Client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("error checking if index %s exists: %w", FoodsIndexName, err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		w.Logger.Debug("Elasticsearch index already exists", zap.String("index", FoodsIndexName))
		return nil
	}

	createRes, err := w.Client.Indices.Create(
		FoodsIndexName,
		w.Client.Indices.Create.WithContext(ctx),
		w.Client.Indices.Create.WithBody(strings.NewReader(foodsIndexMapping)),
	)
	if err != nil {
		return fmt.Errorf("error creating index %s: %w", FoodsIndexName, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index %s: %s", FoodsIndexName, createRes.String())
	}

	w.Logger.Info("Created Elasticsearch index", zap.String("index", FoodsIndexName))
	return nil
}
