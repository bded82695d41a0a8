// File: internal/food/search.go
package food

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodshare_backend/internal/platform/elasticsearch"
)

// foodDocument is the Elasticsearch mirror of a listing row.
type foodDocument struct {
	FoodName        string    `json:"food_name"`
	FoodStatus      string    `json:"food_status"`
	DonatorEmail    string    `json:"donator_email"`
	PickupLocation  string    `json:"pickup_location"`
	FoodQuantity    int       `json:"food_quantity"`
	ExpiredDateTime time.Time `json:"expired_date_time"`
	CreatedAt       time.Time `json:"created_at"`
}

func toDocument(listing *FoodListing) foodDocument {
	return foodDocument{
		FoodName:        listing.FoodName,
		FoodStatus:      string(listing.FoodStatus),
		DonatorEmail:    listing.DonorEmail,
		PickupLocation:  listing.PickupLocation,
		FoodQuantity:    listing.FoodQuantity,
		ExpiredDateTime: listing.ExpiredDateTime,
		CreatedAt:       listing.CreatedAt,
	}
}

// esIndex maintains the optional search mirror. All methods are no-ops when
// the wrapper is nil so callers never branch on configuration.
type esIndex struct {
	es     *elasticsearch.ESClientWrapper
	logger *zap.Logger
}

func newESIndex(es *elasticsearch.ESClientWrapper, logger *zap.Logger) *esIndex {
	return &esIndex{es: es, logger: logger}
}

func (x *esIndex) enabled() bool {
	return x != nil && x.es != nil && x.es.Client != nil
}

// Index upserts a listing document. Mirror failures are logged, never
// surfaced; the database row is the source of truth.
func (x *esIndex) Index(ctx context.Context, listing *FoodListing) {
	if !x.enabled() {
		return
	}
	body, err := json.Marshal(toDocument(listing))
	if err != nil {
		x.logger.Error("Failed to marshal food document for indexing", zap.Error(err))
		return
	}
	req := esapi.IndexRequest{
		Index:      elasticsearch.FoodsIndexName,
		DocumentID: listing.ID.String(),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, x.es.Client)
	if err != nil {
		x.logger.Error("Failed to index food document", zap.Error(err), zap.String("id", listing.ID.String()))
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		x.logger.Error("Elasticsearch rejected food document", zap.String("id", listing.ID.String()), zap.String("response", res.String()))
	}
}

// Delete removes a listing document from the mirror.
func (x *esIndex) Delete(ctx context.Context, id uuid.UUID) {
	if !x.enabled() {
		return
	}
	req := esapi.DeleteRequest{
		Index:      elasticsearch.FoodsIndexName,
		DocumentID: id.String(),
	}
	res, err := req.Do(ctx, x.es.Client)
	if err != nil {
		x.logger.Error("Failed to delete food document", zap.Error(err), zap.String("id", id.String()))
		return
	}
	defer res.Body.Close()
}

// SearchIDs runs a name match query and returns matching listing IDs in score
// order. Returns ok=false when the mirror is disabled or the query fails, so
// the caller can fall back to SQL.
func (x *esIndex) SearchIDs(ctx context.Context, term string) ([]uuid.UUID, bool) {
	if !x.enabled() {
		return nil, false
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"match": map[string]interface{}{
							"food_name": map[string]interface{}{
								"query":     term,
								"operator":  "and",
								"fuzziness": "AUTO",
							},
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"food_status": string(StatusAvailable)},
					},
				},
			},
		},
		"_source": false,
		"size":    200,
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, false
	}

	res, err := x.es.Client.Search(
		x.es.Client.Search.WithContext(ctx),
		x.es.Client.Search.WithIndex(elasticsearch.FoodsIndexName),
		x.es.Client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		x.logger.Warn("Elasticsearch search failed, falling back to SQL", zap.Error(err))
		return nil, false
	}
	defer res.Body.Close()
	if res.IsError() {
		x.logger.Warn("Elasticsearch search returned error, falling back to SQL", zap.String("response", res.String()))
		return nil, false
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		x.logger.Warn("Failed to decode Elasticsearch response", zap.Error(err))
		return nil, false
	}

	ids := make([]uuid.UUID, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, true
}

// BulkIndex reindexes listings in batches. Used by the sync-foods command.
func (x *esIndex) BulkIndex(ctx context.Context, listings []FoodListing) error {
	if !x.enabled() {
		return fmt.Errorf("elasticsearch is not configured")
	}

	var buf bytes.Buffer
	for i := range listings {
		meta := fmt.Sprintf(`{"index":{"_index":%q,"_id":%q}}`, elasticsearch.FoodsIndexName, listings[i].ID.String())
		doc, err := json.Marshal(toDocument(&listings[i]))
		if err != nil {
			return fmt.Errorf("marshal document %s: %w", listings[i].ID, err)
		}
		buf.WriteString(meta)
		buf.WriteByte('\n')
		buf.Write(doc)
		buf.WriteByte('\n')
	}

	res, err := x.es.Client.Bulk(
		bytes.NewReader(buf.Bytes()),
		x.es.Client.Bulk.WithContext(ctx),
		x.es.Client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("bulk index request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk index rejected: %s", res.String())
	}

	x.logger.Info("Bulk indexed food documents", zap.Int("count", len(listings)))
	return nil
}
