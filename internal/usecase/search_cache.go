package usecase

import (
	"context"
	"encoding/json"
	"time"
)

// SearchCache stores serialized account projections. Implementations treat
// a miss as (ok=false, err=nil).
type SearchCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// SearchCacheTTL bounds how stale a cached projection may get. Projections
// only change if an account is removed, so a short TTL is enough.
const SearchCacheTTL = 5 * time.Minute

// CachedAccountSearch serves account projections from cache before falling
// back to the directory. Cache failures are swallowed; the lookup still
// works without Redis.
type CachedAccountSearch struct {
	directory *AccountDirectory
	cache     SearchCache
}

// NewCachedAccountSearch creates a new CachedAccountSearch.
func NewCachedAccountSearch(directory *AccountDirectory, cache SearchCache) *CachedAccountSearch {
	return &CachedAccountSearch{
		directory: directory,
		cache:     cache,
	}
}

// Search looks up an account projection by account number.
func (s *CachedAccountSearch) Search(ctx context.Context, accountNumber string) (*AccountProjection, error) {
	if cached, ok, err := s.cache.Get(ctx, accountNumber); err == nil && ok {
		var proj AccountProjection
		if json.Unmarshal([]byte(cached), &proj) == nil {
			return &proj, nil
		}
	}

	proj, err := s.directory.Search(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(proj); err == nil {
		_ = s.cache.Set(ctx, accountNumber, string(data), SearchCacheTTL)
	}

	return proj, nil
}
