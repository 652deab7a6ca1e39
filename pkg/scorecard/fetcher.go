package scorecard

import (
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Getter fetches one raw scorecard document by stock id.
type Getter interface {
	GetScorecard(sid string) (*Document, error)
}

// FetchStats accumulates per-id failure counts across concurrent fetches.
type FetchStats struct {
	Requests  atomic.Int64
	Transport atomic.Int64
	Parse     atomic.Int64
}

// FetchAll retrieves every stock's scorecard concurrently through the
// getter. Per-id failures are logged and recorded in the stats, never
// propagated: a failed sid maps to nil so the caller can build a degraded
// row for it. FetchAll returns only after every retrieval has settled.
func FetchAll(getter Getter, sids []string, logger *zap.Logger) (map[string]*Document, *FetchStats) {
	stats := &FetchStats{}

	type fetchResult struct {
		sid string
		doc *Document
	}

	results := make(chan fetchResult, len(sids))
	var wg sync.WaitGroup

	for _, sid := range sids {
		wg.Add(1)
		go func(sid string) {
			defer wg.Done()
			stats.Requests.Add(1)

			doc, err := getter.GetScorecard(sid)
			if err != nil {
				var statusErr interface{ HTTPStatusCode() int }
				if errors.As(err, &statusErr) {
					stats.Transport.Add(1)
				} else {
					stats.Parse.Add(1)
				}
				logger.Warn("scorecard fetch failed",
					zap.String("sid", sid), zap.Error(err))
				results <- fetchResult{sid: sid}
				return
			}

			results <- fetchResult{sid: sid, doc: doc}
		}(sid)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	docs := make(map[string]*Document, len(sids))
	for r := range results {
		docs[r.sid] = r.doc
	}

	return docs, stats
}
