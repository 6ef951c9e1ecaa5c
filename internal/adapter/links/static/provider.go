package staticlinks

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sync"

	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

// Provider hands out random link-visit tasks from a fixed pool. The pool is
// the built-in default unless a JSON file overrides it at construction.
type Provider struct {
	mu   sync.Mutex
	pool []merge.LinkTask
	rng  *rand.Rand
}

var _ ports.LinkProvider = (*Provider)(nil)

func defaultPool() []merge.LinkTask {
	return []merge.LinkTask{
		{URL: "https://youtube.com/campaign1", Platform: merge.PlatformYouTube},
		{URL: "https://twitter.com/promo123", Platform: merge.PlatformTwitter},
		{URL: "https://linkedin.com/offer", Platform: merge.PlatformLinkedIn},
		{URL: "https://discord.gg/community", Platform: merge.PlatformDiscord},
	}
}

func New(rng *rand.Rand) *Provider {
	return &Provider{pool: defaultPool(), rng: rng}
}

// NewFromFile loads the pool from a JSON array of link tasks.
func NewFromFile(path string, rng *rand.Rand) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read link pool: %w", err)
	}
	var pool []merge.LinkTask
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("decode link pool: %w", err)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("link pool %s is empty", path)
	}
	return &Provider{pool: pool, rng: rng}, nil
}

// RandomLinks returns up to n distinct links, each reset to unvisited.
func (p *Provider) RandomLinks(n int) []merge.LinkTask {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n > len(p.pool) {
		n = len(p.pool)
	}
	picks := p.rng.Perm(len(p.pool))[:n]
	out := make([]merge.LinkTask, 0, n)
	for _, i := range picks {
		link := p.pool[i]
		link.Visited = false
		out = append(out, link)
	}
	return out
}
