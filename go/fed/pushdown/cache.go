/*
Copyright 2026 The FedSQL Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package pushdown

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/spf13/pflag"
	"golang.org/x/sync/singleflight"

	"fedsql.io/fedsql/go/fed/federrors"
	"fedsql.io/fedsql/go/fed/rex"
)

// Classifier decides whether an expression consists only of constructs the
// external sources can evaluate. The default is
// rex.IsOnlyStandardExpressions; the seam exists so the classifier stays a
// black box to the cache.
type Classifier func(rex.Expr) (bool, error)

// StandardClassifier adapts rex.IsOnlyStandardExpressions to the
// Classifier seam.
func StandardClassifier(expr rex.Expr) (bool, error) {
	return rex.IsOnlyStandardExpressions(expr), nil
}

var (
	defaultExprCacheCapacity = 1000
	defaultExprCacheTTL      = 10 * time.Minute
)

// RegisterFlags installs the pushdown tuning flags on the given FlagSet.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVar(&defaultExprCacheCapacity, "pushdown-expr-cache-capacity", defaultExprCacheCapacity,
		"maximum number of memoized expression pushability checks")
	fs.DurationVar(&defaultExprCacheTTL, "pushdown-expr-cache-ttl", defaultExprCacheTTL,
		"how long a memoized expression pushability check stays valid")
}

// cacheEntry holds a classified expression together with its verdict. The
// expression itself is kept in the entry so the cached identity cannot be
// recycled by the garbage collector while the entry is live.
type cacheEntry struct {
	expr     rex.Expr
	pushable bool
}

// ExprCheckCache memoizes the pushability classifier.
//
// Expressions are keyed by identity: the planner reuses expression
// instances across rules within one planning session, so repeated checks of
// shared sub-expressions hit the cache. Entries are bounded in number and
// expire after a TTL, keeping the cache from growing without limit across a
// long-lived session. One cache instance is shared by all rules of a
// session and is safe for concurrent use; concurrent lookups of the same
// expression run the classifier at most once, with late arrivals blocking
// on the in-flight computation.
type ExprCheckCache struct {
	classifier Classifier
	entries    *expirable.LRU[string, cacheEntry]
	group      singleflight.Group
}

// NewExprCheckCache returns a cache over the given classifier. A zero or
// negative capacity or ttl selects the default (1000 entries, 10 minutes).
func NewExprCheckCache(classifier Classifier, capacity int, ttl time.Duration) *ExprCheckCache {
	if capacity <= 0 {
		capacity = defaultExprCacheCapacity
	}
	if ttl <= 0 {
		ttl = defaultExprCacheTTL
	}
	return &ExprCheckCache{
		classifier: classifier,
		entries:    expirable.NewLRU[string, cacheEntry](capacity, nil, ttl),
	}
}

// NewDefaultExprCheckCache returns a cache over the standard classifier,
// sized by the registered flags.
func NewDefaultExprCheckCache() *ExprCheckCache {
	return NewExprCheckCache(StandardClassifier, defaultExprCacheCapacity, defaultExprCacheTTL)
}

// IsPushable reports whether the expression is safe to push to an external
// SQL source. A classifier failure is returned as an INTERNAL error and is
// not cached: without a verdict, pushdown safety cannot be established, and
// neither "pushable" nor "non-pushable" would be an honest default.
func (c *ExprCheckCache) IsPushable(expr rex.Expr) (bool, error) {
	key := identityKey(expr)
	if entry, ok := c.entries.Get(key); ok {
		return entry.pushable, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if entry, ok := c.entries.Get(key); ok {
			return entry.pushable, nil
		}
		pushable, err := c.classifier(expr)
		if err != nil {
			return false, federrors.Errorf(federrors.Internal, "failure while trying to evaluate pushdown: %v", err)
		}
		c.entries.Add(key, cacheEntry{expr: expr, pushable: pushable})
		return pushable, nil
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// Len returns the number of live entries, for tests and debugging.
func (c *ExprCheckCache) Len() int {
	return c.entries.Len()
}

// identityKey derives the cache key from the expression's identity. All
// rex.Expr implementations are pointers, so the formatted address is stable
// for the lifetime of the instance.
func identityKey(expr rex.Expr) string {
	return fmt.Sprintf("%p", expr)
}
