package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/docanchor/docanchor/internal/chunker"
	"github.com/docanchor/docanchor/internal/embed"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const (
	chunkClass    = "DocumentChunk"
	upsertBatch   = 200
	listScanLimit = 10000
)

var chunkClassObject = &models.Class{
	Class: chunkClass,
	Properties: []*models.Property{
		{Name: "content", DataType: []string{"text"}},
		{Name: "filename", DataType: []string{"text"}},
		{Name: "documentId", DataType: []string{"text"}},
		{Name: "page", DataType: []string{"int"}},
		{Name: "charStart", DataType: []string{"int"}},
		{Name: "charEnd", DataType: []string{"int"}},
		{Name: "chunkId", DataType: []string{"text"}},
	},
	Vectorizer:      "none",
	VectorIndexType: "hnsw",
}

// WeaviateIndex stores chunks in a Weaviate class with client-side vectors.
type WeaviateIndex struct {
	client   *weaviate.Client
	embedder embed.Embedder
}

// NewWeaviateIndex connects to Weaviate and creates the chunk class if it
// does not exist yet.
func NewWeaviateIndex(ctx context.Context, hostURL, apiKey string, embedder embed.Embedder) (*WeaviateIndex, error) {
	scheme := "http"
	if strings.HasPrefix(hostURL, "https") {
		scheme = "https"
	}
	host := strings.TrimPrefix(strings.TrimPrefix(hostURL, "https://"), "http://")

	cfg := weaviate.Config{Host: host, Scheme: scheme}
	if apiKey != "" {
		cfg.AuthConfig = auth.ApiKey{Value: apiKey}
	}

	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}

	schema, err := client.Schema().Getter().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("get schema: %w", err)
	}
	exists := false
	for _, class := range schema.Classes {
		if class.Class == chunkClass {
			exists = true
			break
		}
	}
	if !exists {
		if err := client.Schema().ClassCreator().WithClass(chunkClassObject).Do(ctx); err != nil {
			return nil, fmt.Errorf("create class %s: %w", chunkClass, err)
		}
	}

	return &WeaviateIndex{client: client, embedder: embedder}, nil
}

func (w *WeaviateIndex) Upsert(ctx context.Context, chunks []chunker.DocumentChunk) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := w.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}

	ids := make([]string, len(chunks))
	for start := 0; start < len(chunks); start += upsertBatch {
		end := start + upsertBatch
		if end > len(chunks) {
			end = len(chunks)
		}

		batcher := w.client.Batch().ObjectsBatcher()
		for i := start; i < end; i++ {
			c := chunks[i]
			batcher = batcher.WithObjects(&models.Object{
				Class: chunkClass,
				// Deterministic object id so re-ingesting replaces rather
				// than duplicates.
				ID: objectID(c.ChunkID),
				Properties: map[string]any{
					"content":    c.Text,
					"filename":   c.Metadata[chunker.MetaFilename],
					"documentId": c.DocumentID,
					"page":       c.PageNumber,
					"charStart":  c.CharStart,
					"charEnd":    c.CharEnd,
					"chunkId":    c.ChunkID,
				},
				Vector: vectors[i],
			})
			ids[i] = c.ChunkID
		}
		if _, err := batcher.Do(ctx); err != nil {
			return nil, fmt.Errorf("insert batch %d-%d: %w", start, end, err)
		}
	}

	return ids, nil
}

func (w *WeaviateIndex) Search(ctx context.Context, query string, k int, filter map[string]string) ([]ScoredChunk, error) {
	qv, err := w.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	fields := []graphql.Field{
		{Name: "content"},
		{Name: "filename"},
		{Name: "documentId"},
		{Name: "page"},
		{Name: "charStart"},
		{Name: "charEnd"},
		{Name: "chunkId"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "certainty"}}},
	}

	builder := w.client.GraphQL().Get().
		WithClassName(chunkClass).
		WithFields(fields...).
		WithNearVector(w.client.GraphQL().NearVectorArgBuilder().WithVector(qv)).
		WithLimit(k)
	if docID := filter[chunker.MetaDocumentID]; docID != "" {
		builder = builder.WithWhere(documentFilter(docID))
	}

	resp, err := builder.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("search: %s", resp.Errors[0].Message)
	}

	var results []ScoredChunk
	for _, item := range classEntries(resp.Data, "Get") {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		meta := map[string]string{
			chunker.MetaFilename:   asString(obj["filename"]),
			chunker.MetaDocumentID: asString(obj["documentId"]),
			chunker.MetaPage:       asIntString(obj["page"]),
			chunker.MetaCharStart:  asIntString(obj["charStart"]),
			chunker.MetaCharEnd:    asIntString(obj["charEnd"]),
			chunker.MetaChunkID:    asString(obj["chunkId"]),
		}
		score := 0.0
		if additional, ok := obj["_additional"].(map[string]any); ok {
			if c, ok := additional["certainty"].(float64); ok {
				score = c
			}
		}
		results = append(results, ScoredChunk{
			Chunk: ChunkFromMetadata(asString(obj["content"]), meta),
			Score: score,
		})
	}
	return results, nil
}

func (w *WeaviateIndex) DeleteWhere(ctx context.Context, documentID string) (bool, error) {
	resp, err := w.client.Batch().ObjectsBatchDeleter().
		WithClassName(chunkClass).
		WithWhere(documentFilter(documentID)).
		WithOutput("minimal").
		Do(ctx)
	if err != nil {
		return false, fmt.Errorf("delete document %s: %w", documentID, err)
	}
	return resp.Results != nil && resp.Results.Matches > 0, nil
}

func (w *WeaviateIndex) CountWhere(ctx context.Context, documentID string) (int, error) {
	resp, err := w.client.GraphQL().Aggregate().
		WithClassName(chunkClass).
		WithFields(graphql.Field{Name: "meta", Fields: []graphql.Field{{Name: "count"}}}).
		WithWhere(documentFilter(documentID)).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("count document %s: %w", documentID, err)
	}
	if len(resp.Errors) > 0 {
		return 0, fmt.Errorf("count document %s: %s", documentID, resp.Errors[0].Message)
	}

	agg := classEntries(resp.Data, "Aggregate")
	if len(agg) == 0 {
		return 0, nil
	}
	entry, ok := agg[0].(map[string]any)
	if !ok {
		return 0, nil
	}
	meta, ok := entry["meta"].(map[string]any)
	if !ok {
		return 0, nil
	}
	count, _ := meta["count"].(float64)
	return int(count), nil
}

func (w *WeaviateIndex) ListDocumentIDs(ctx context.Context) ([]string, error) {
	resp, err := w.client.GraphQL().Get().
		WithClassName(chunkClass).
		WithFields(graphql.Field{Name: "documentId"}).
		WithLimit(listScanLimit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("list documents: %s", resp.Errors[0].Message)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, item := range classEntries(resp.Data, "Get") {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id := asString(obj["documentId"])
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// classEntries digs the chunk class list out of a GraphQL response body.
// Error responses can omit the root key entirely, so every step is checked.
func classEntries(data map[string]models.JSONObject, root string) []any {
	section, ok := data[root].(map[string]any)
	if !ok {
		return nil
	}
	entries, ok := section[chunkClass].([]any)
	if !ok {
		return nil
	}
	return entries
}

func documentFilter(documentID string) *filters.WhereBuilder {
	return filters.Where().
		WithPath([]string{"documentId"}).
		WithOperator(filters.Equal).
		WithValueString(documentID)
}

func objectID(chunkID string) strfmt.UUID {
	return strfmt.UUID(uuid.NewSHA1(uuid.NameSpaceURL, []byte(chunkID)).String())
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asIntString(v any) string {
	f, _ := v.(float64)
	return fmt.Sprintf("%d", int(f))
}
