package matcher

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"

	"vkrishnan/ledger-match/internal/logging"
	"vkrishnan/ledger-match/internal/models"
	"vkrishnan/ledger-match/internal/textutils"
)

// EmbeddingClient is the optional semantic backend. When no client is
// injected, or Available reports false, the semantic stage never fires and
// resolution degrades to the lexical stages without surfacing an error.
type EmbeddingClient interface {
	// Available reports whether the backend can serve embedding requests.
	Available() bool

	// Embed encodes each text into a fixed-size dense vector.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// embeddingCache holds ledger vectors for one ledger-master snapshot,
// keyed by a content hash so a changed master invalidates it. Partial
// encodes are never cached; the whole master is encoded or nothing is.
type embeddingCache struct {
	hash    uint64
	ledgers []string
	vectors [][]float32
}

func masterHash(ledgerMaster []string) uint64 {
	h := fnv.New64a()
	for _, name := range ledgerMaster {
		_, _ = h.Write([]byte(name))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// ledgerVectors returns cached embeddings for the ledger master,
// recomputing them only when the master content changes. Embedding per
// narration call is disallowed; this is the one place ledgers are encoded.
func (m *Matcher) ledgerVectors(ctx context.Context, ledgerMaster []string) ([][]float32, error) {
	hash := masterHash(ledgerMaster)

	m.mu.Lock()
	if m.embeddings != nil && m.embeddings.hash == hash {
		vectors := m.embeddings.vectors
		m.mu.Unlock()
		return vectors, nil
	}
	m.mu.Unlock()

	texts := make([]string, len(ledgerMaster))
	for i, ledger := range ledgerMaster {
		texts[i] = textutils.Normalize(ledger)
	}

	vectors, err := m.client.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding ledger master: %w", err)
	}
	if len(vectors) != len(ledgerMaster) {
		return nil, fmt.Errorf("embedding ledger master: got %d vectors for %d ledgers", len(vectors), len(ledgerMaster))
	}

	m.mu.Lock()
	m.embeddings = &embeddingCache{hash: hash, ledgers: ledgerMaster, vectors: vectors}
	m.mu.Unlock()

	return vectors, nil
}

// semanticMatch encodes the narration (extracted name when available) and
// picks the ledger with the highest cosine similarity. The raw best score
// is returned even below the threshold, for diagnostics.
func (m *Matcher) semanticMatch(ctx context.Context, narration string, ledgerMaster []string, threshold float64) (string, float64, error) {
	text, _ := textutils.IdentifyPersonOrCompany(narration)
	if text == "" {
		text = textutils.Normalize(narration)
	}
	if text == "" || len(ledgerMaster) == 0 {
		return "", 0, nil
	}

	ledgerVecs, err := m.ledgerVectors(ctx, ledgerMaster)
	if err != nil {
		return "", 0, err
	}

	narrationVecs, err := m.client.Embed(ctx, []string{text})
	if err != nil {
		return "", 0, fmt.Errorf("embedding narration: %w", err)
	}
	if len(narrationVecs) != 1 {
		return "", 0, fmt.Errorf("embedding narration: got %d vectors for one text", len(narrationVecs))
	}

	bestScore := -1.0
	bestIdx := -1
	for i, vec := range ledgerVecs {
		score := cosineSimilarity(narrationVecs[0], vec)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return "", 0, nil
	}

	if bestScore >= threshold {
		return ledgerMaster[bestIdx], bestScore * 100, nil
	}
	return "", bestScore * 100, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// semanticStrategy is the semantic-AI stage: cosine similarity between the
// narration embedding and the cached ledger embeddings.
type semanticStrategy struct {
	m         *Matcher
	threshold float64
	minScore  float64
}

func (semanticStrategy) Name() string { return "semantic_ai" }

func (s semanticStrategy) Match(ctx context.Context, narration string, req Request) (models.MatchResult, bool, error) {
	if s.m.client == nil || !s.m.client.Available() {
		return models.MatchResult{}, false, nil
	}

	ledger, score, err := s.m.semanticMatch(ctx, narration, req.LedgerMaster, s.threshold)
	if err != nil {
		// The semantic backend is best-effort; resolution degrades to the
		// remaining stages.
		s.m.log.WithError(err).Warn("semantic match failed",
			logging.Field{Key: "narration", Value: narration})
		return models.MatchResult{}, false, nil
	}

	if ledger == "" || score < s.minScore {
		return models.MatchResult{}, false, nil
	}
	return models.MatchResult{
		Ledger:     ledger,
		Confidence: score,
		Strategy:   models.StrategySemanticAI,
	}, true, nil
}
