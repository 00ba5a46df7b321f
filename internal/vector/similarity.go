// ABOUTME: Exact cosine similarity ranking over knowledge documents
// ABOUTME: Shared by every backend that scores vectors in process
package vector

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/harper/agri-advisor/internal/models"
)

// Cosine calculates cosine similarity between two vectors.
// Mismatched lengths and zero vectors score 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores docs against query and returns the top k, most similar first.
// Equal scores keep insertion order (lower Seq first).
func Rank(query []float64, docs []models.KnowledgeDocument, k int) []models.KnowledgeMatch {
	matches := make([]models.KnowledgeMatch, 0, len(docs))
	for _, doc := range docs {
		matches = append(matches, models.KnowledgeMatch{
			Document: doc,
			Score:    Cosine(query, doc.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Document.Seq < matches[j].Document.Seq
	})

	if k >= 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// Normalize scales v to unit length in place and returns it
func Normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
	return v
}

// ToBlob encodes a vector as little-endian float64 bytes
func ToBlob(v []float64) []byte {
	blob := make([]byte, len(v)*8)
	for i, x := range v {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(x))
	}
	return blob
}

// FromBlob decodes little-endian float64 bytes into a vector
func FromBlob(blob []byte) []float64 {
	count := len(blob) / 8
	v := make([]float64, count)
	for i := 0; i < count; i++ {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return v
}

// Float32To64 widens a float32 embedding as returned by remote APIs
func Float32To64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// Float64To32 narrows a vector for APIs that take float32
func Float64To32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
