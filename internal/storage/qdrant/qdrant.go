// ABOUTME: Knowledge backend on a Qdrant vector database over gRPC
// ABOUTME: Point ids are name-based UUIDs of document ids so re-seeding overwrites in place
package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/vector"
)

// Payload keys stored with every point
const (
	payloadText   = "text"
	payloadSource = "source_tag"
	payloadDocID  = "doc_id"
)

// Config locates the Qdrant collection
type Config struct {
	Host       string
	Port       int
	Collection string
	Dimension  int
}

type pointsAPI interface {
	Upsert(ctx context.Context, in *pb.UpsertPoints, opts ...grpc.CallOption) (*pb.PointsOperationResponse, error)
	Search(ctx context.Context, in *pb.SearchPoints, opts ...grpc.CallOption) (*pb.SearchResponse, error)
	Count(ctx context.Context, in *pb.CountPoints, opts ...grpc.CallOption) (*pb.CountResponse, error)
}

type collectionsAPI interface {
	Get(ctx context.Context, in *pb.GetCollectionInfoRequest, opts ...grpc.CallOption) (*pb.GetCollectionInfoResponse, error)
	Create(ctx context.Context, in *pb.CreateCollection, opts ...grpc.CallOption) (*pb.CollectionOperationResponse, error)
}

// Backend implements knowledge storage using Qdrant
type Backend struct {
	conn        *grpc.ClientConn
	points      pointsAPI
	collections collectionsAPI
	collection  string
	dimension   int
}

// New connects to Qdrant and makes sure the cosine collection exists
func New(ctx context.Context, cfg Config) (*Backend, error) {
	if cfg.Collection == "" {
		return nil, goerr.Wrap(models.ErrValidation, "qdrant collection is required")
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, goerr.Wrap(err, "qdrant connect", goerr.V("addr", addr))
	}

	b := newBackend(pb.NewPointsClient(conn), pb.NewCollectionsClient(conn), cfg)
	b.conn = conn

	if err := b.ensureCollection(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return b, nil
}

func newBackend(points pointsAPI, collections collectionsAPI, cfg Config) *Backend {
	return &Backend{
		points:      points,
		collections: collections,
		collection:  cfg.Collection,
		dimension:   cfg.Dimension,
	}
}

func (b *Backend) ensureCollection(ctx context.Context) error {
	_, err := b.collections.Get(ctx, &pb.GetCollectionInfoRequest{CollectionName: b.collection})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return goerr.Wrap(err, "failed to inspect qdrant collection", goerr.V("collection", b.collection))
	}
	if b.dimension <= 0 {
		return goerr.Wrap(models.ErrValidation, "vector dimension is required to create a collection",
			goerr.V("collection", b.collection))
	}

	_, err = b.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: b.collection,
		VectorsConfig: &pb.VectorsConfig{Config: &pb.VectorsConfig_Params{Params: &pb.VectorParams{
			Size:     uint64(b.dimension),
			Distance: pb.Distance_Cosine,
		}}},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create qdrant collection", goerr.V("collection", b.collection))
	}
	return nil
}

// PointID maps a document id to its stable Qdrant point id
func PointID(docID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("agri-advisor:knowledge:"+docID)).String()
}

// Upsert writes docs and waits for the write to be applied
func (b *Backend) Upsert(ctx context.Context, docs []models.KnowledgeDocument) error {
	if len(docs) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, len(docs))
	for i, d := range docs {
		points[i] = &pb.PointStruct{
			Id:      &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: PointID(d.ID)}},
			Vectors: &pb.Vectors{VectorsOptions: &pb.Vectors_Vector{Vector: &pb.Vector{Data: vector.Float64To32(d.Embedding)}}},
			Payload: map[string]*pb.Value{
				payloadText:   {Kind: &pb.Value_StringValue{StringValue: d.Text}},
				payloadSource: {Kind: &pb.Value_StringValue{StringValue: d.SourceTag}},
				payloadDocID:  {Kind: &pb.Value_StringValue{StringValue: d.ID}},
			},
		}
	}

	wait := true
	_, err := b.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: b.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return goerr.Wrap(err, "qdrant upsert failed", goerr.V("count", len(docs)))
	}
	return nil
}

// Search asks Qdrant for the k nearest points
func (b *Backend) Search(ctx context.Context, query []float64, k int) ([]models.KnowledgeMatch, error) {
	resp, err := b.points.Search(ctx, &pb.SearchPoints{
		CollectionName: b.collection,
		Vector:         vector.Float64To32(query),
		Limit:          uint64(k),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "qdrant search failed")
	}

	matches := make([]models.KnowledgeMatch, len(resp.GetResult()))
	for i, pt := range resp.GetResult() {
		payload := pt.GetPayload()
		matches[i] = models.KnowledgeMatch{
			Document: models.KnowledgeDocument{
				ID:        payload[payloadDocID].GetStringValue(),
				Text:      payload[payloadText].GetStringValue(),
				SourceTag: payload[payloadSource].GetStringValue(),
			},
			Score: float64(pt.GetScore()),
		}
	}
	return matches, nil
}

// Count returns the exact number of points in the collection
func (b *Backend) Count(ctx context.Context) (int, error) {
	exact := true
	resp, err := b.points.Count(ctx, &pb.CountPoints{
		CollectionName: b.collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, goerr.Wrap(err, "qdrant count failed")
	}
	return int(resp.GetResult().GetCount()), nil
}

// Close closes the gRPC connection
func (b *Backend) Close() error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Close()
}
