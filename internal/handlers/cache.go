package handlers

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Public list endpoints are hit by every portfolio page view, so their
// results are kept in memory for a few minutes.
var listCache = cache.New(5*time.Minute, 10*time.Minute)

func cachedList(key string, fetch func() (any, error)) (any, error) {
	if data, found := listCache.Get(key); found {
		return data, nil
	}

	data, err := fetch()
	if err != nil {
		return nil, err
	}

	listCache.Set(key, data, cache.DefaultExpiration)
	return data, nil
}

// FlushListCache drops every cached listing. Handlers call it after
// each successful mutation so list reads never serve stale rows.
func FlushListCache() {
	listCache.Flush()
}
