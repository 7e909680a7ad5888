// Package metadata enriches secret titles with descriptive fields used as
// hints. Everything here is best-effort: lookups degrade to empty metadata
// rather than failing a gameplay request.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quibblegames/twentyq/backend/internal/config"
	"github.com/quibblegames/twentyq/backend/internal/model/game"
	"github.com/quibblegames/twentyq/backend/internal/store"
)

// Cached metadata outlives sessions considerably; titles do not change.
const cacheTTL = 7 * 24 * time.Hour

// Service looks up game metadata, caching results in the document store.
type Service struct {
	client  *http.Client
	baseURL string
	docs    store.DocumentStore
}

// NewService wires the enrichment client. An empty BaseURL disables remote
// lookups, leaving cache-only behavior.
func NewService(cfg config.MetadataConfig, docs store.DocumentStore) *Service {
	return &Service{
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		docs:    docs,
	}
}

// Fetch returns whatever metadata is known for title. It never fails:
// cache errors, network errors, and malformed payloads all collapse to
// empty metadata.
func (s *Service) Fetch(ctx context.Context, title string) game.Metadata {
	key := cacheKey(title)

	if raw, ok, err := s.docs.Get(ctx, store.CollectionMetadata, key); err == nil && ok {
		var md game.Metadata
		if err := json.Unmarshal(raw, &md); err == nil {
			return md
		}
	} else if err != nil {
		log.Printf("[metadata] cache read failed for %q: %v", title, err)
	}

	md := s.fetchRemote(ctx, title)
	if !md.Empty() {
		s.Save(ctx, title, md)
	}
	return md
}

// Save writes metadata to the cache. Failures are logged and dropped.
func (s *Service) Save(ctx context.Context, title string, md game.Metadata) {
	raw, err := json.Marshal(md)
	if err != nil {
		return
	}
	if err := s.docs.Set(ctx, store.CollectionMetadata, cacheKey(title), raw, time.Now().Add(cacheTTL)); err != nil {
		log.Printf("[metadata] cache write failed for %q: %v", title, err)
	}
}

func (s *Service) fetchRemote(ctx context.Context, title string) game.Metadata {
	if s.baseURL == "" {
		return game.Metadata{}
	}

	endpoint := fmt.Sprintf("%s/games?title=%s", s.baseURL, url.QueryEscape(title))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return game.Metadata{}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[metadata] lookup failed for %q: %v", title, err)
		return game.Metadata{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[metadata] lookup for %q returned status %d", title, resp.StatusCode)
		return game.Metadata{}
	}

	var md game.Metadata
	if err := json.NewDecoder(resp.Body).Decode(&md); err != nil {
		log.Printf("[metadata] malformed payload for %q: %v", title, err)
		return game.Metadata{}
	}
	return md
}

func cacheKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
