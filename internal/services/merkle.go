package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/models"
	"go.uber.org/zap"
)

// MerkleService keeps a Merkle tree over complaint record hashes so an
// exported record can be shown to match the anchored root.
type MerkleService struct {
	mu            sync.RWMutex
	leaves        []string
	layers        [][]string
	root          string
	lastBuildTime time.Time
	logger        *zap.SugaredLogger
}

// NewMerkleService creates a new Merkle service
func NewMerkleService(logger *zap.SugaredLogger) *MerkleService {
	return &MerkleService{
		leaves: make([]string, 0),
		layers: make([][]string, 0),
		logger: logger,
	}
}

// BuildFromHashes rebuilds the tree from a list of complaint hashes
func (m *MerkleService) BuildFromHashes(hashes []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.leaves = append([]string(nil), hashes...)
	m.buildTree()
	m.lastBuildTime = time.Now()

	m.logger.Debugw("Merkle tree rebuilt",
		"leaves", len(m.leaves),
		"root", m.root,
	)
}

// GetRoot returns the current Merkle root
func (m *MerkleService) GetRoot() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.root
}

// GetLeafCount returns the number of leaves
func (m *MerkleService) GetLeafCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.leaves)
}

// GetLastBuildTime returns when the tree was last rebuilt
func (m *MerkleService) GetLastBuildTime() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastBuildTime
}

// GetProof generates a Merkle proof for the given leaf index
func (m *MerkleService) GetProof(index int) (*models.MerkleProof, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if index < 0 || index >= len(m.leaves) {
		return nil, fmt.Errorf("index %d out of range (0-%d)", index, len(m.leaves)-1)
	}

	proof := &models.MerkleProof{
		LeafHash: m.leaves[index],
		Root:     m.root,
		Index:    index,
		Proof:    make([]models.ProofStep, 0),
	}

	currentIndex := index
	for i := 0; i < len(m.layers)-1; i++ {
		layer := m.layers[i]
		isRight := currentIndex%2 == 1
		siblingIndex := currentIndex + 1
		if isRight {
			siblingIndex = currentIndex - 1
		}

		// an unpaired last node is hashed with itself
		if siblingIndex >= len(layer) {
			siblingIndex = currentIndex
		}
		position := "right"
		if isRight {
			position = "left"
		}
		proof.Proof = append(proof.Proof, models.ProofStep{
			Hash:     layer[siblingIndex],
			Position: position,
		})

		currentIndex /= 2
	}

	return proof, nil
}

// ProofForLeaf returns the proof for the first leaf equal to hash.
func (m *MerkleService) ProofForLeaf(hash string) (*models.MerkleProof, bool) {
	m.mu.RLock()
	idx := -1
	for i, l := range m.leaves {
		if l == hash {
			idx = i
			break
		}
	}
	m.mu.RUnlock()
	if idx == -1 {
		return nil, false
	}
	proof, err := m.GetProof(idx)
	if err != nil {
		return nil, false
	}
	return proof, true
}

// VerifyProof recomputes the root from a leaf and its proof path.
func VerifyProof(p *models.MerkleProof) bool {
	if p == nil || p.LeafHash == "" || p.Root == "" {
		return false
	}
	h := p.LeafHash
	for _, step := range p.Proof {
		switch step.Position {
		case "left":
			h = hashPair(step.Hash, h)
		case "right":
			h = hashPair(h, step.Hash)
		default:
			return false
		}
	}
	return h == p.Root
}

// HashComplaint is the leaf hash of a complaint record.
func HashComplaint(c *models.Complaint) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode complaint %s: %w", c.ID, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// buildTree constructs the Merkle tree from leaves (internal, must hold write lock)
func (m *MerkleService) buildTree() {
	if len(m.leaves) == 0 {
		m.root = ""
		m.layers = nil
		return
	}

	currentLayer := make([]string, len(m.leaves))
	copy(currentLayer, m.leaves)
	m.layers = [][]string{currentLayer}

	for len(currentLayer) > 1 {
		nextLayer := make([]string, 0, (len(currentLayer)+1)/2)
		for i := 0; i < len(currentLayer); i += 2 {
			left := currentLayer[i]
			right := left
			if i+1 < len(currentLayer) {
				right = currentLayer[i+1]
			}
			combined := hashPair(left, right)
			nextLayer = append(nextLayer, combined)
		}
		m.layers = append(m.layers, nextLayer)
		currentLayer = nextLayer
	}

	m.root = currentLayer[0]
}

// hashPair combines and hashes two nodes
func hashPair(left, right string) string {
	h := sha256.New()
	h.Write([]byte(left + right))
	return hex.EncodeToString(h.Sum(nil))
}

// IntegrityWorker periodically rebuilds the Merkle tree from the stored
// complaints.
type IntegrityWorker struct {
	merkleSvc    *MerkleService
	complaintSvc *ComplaintService
	logger       *zap.SugaredLogger
}

// NewIntegrityWorker creates a new background integrity worker
func NewIntegrityWorker(ms *MerkleService, cs *ComplaintService, logger *zap.SugaredLogger) *IntegrityWorker {
	return &IntegrityWorker{merkleSvc: ms, complaintSvc: cs, logger: logger}
}

// Start begins the periodic Merkle tree rebuild loop
func (w *IntegrityWorker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial build
	w.rebuild(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Integrity worker stopped")
			return
		case <-ticker.C:
			w.rebuild(ctx)
		}
	}
}

// Rebuild hashes every stored complaint and rebuilds the tree.
func (w *IntegrityWorker) Rebuild(ctx context.Context) error {
	complaints := w.complaintSvc.List(ctx)
	hashes := make([]string, 0, len(complaints))
	for i := range complaints {
		h, err := HashComplaint(&complaints[i])
		if err != nil {
			return err
		}
		hashes = append(hashes, h)
	}
	w.merkleSvc.BuildFromHashes(hashes)
	return nil
}

func (w *IntegrityWorker) rebuild(ctx context.Context) {
	if err := w.Rebuild(ctx); err != nil {
		w.logger.Errorw("Merkle tree rebuild failed", "error", err)
		return
	}
	w.logger.Infow("Merkle tree rebuild complete",
		"complaints", w.merkleSvc.GetLeafCount(),
		"root", w.merkleSvc.GetRoot(),
	)
}
