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
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fedsql.io/fedsql/go/fed/federrors"
	"fedsql.io/fedsql/go/fed/rex"
	"fedsql.io/fedsql/go/fed/sqltypes"
	"fedsql.io/fedsql/go/test/utils"
)

// countingClassifier wraps the standard classifier and counts invocations.
type countingClassifier struct {
	calls atomic.Int64
}

func (cc *countingClassifier) classify(expr rex.Expr) (bool, error) {
	cc.calls.Add(1)
	return rex.IsOnlyStandardExpressions(expr), nil
}

func TestExprCheckCacheMemoizes(t *testing.T) {
	defer utils.EnsureNoLeaks(t)

	cc := &countingClassifier{}
	cache := NewExprCheckCache(cc.classify, 0, 0)

	standard := rex.NewCall(rex.OpGt, sqltypes.Bool,
		rex.NewColRef("price", sqltypes.Float64),
		rex.NewIntLiteral("100"))
	udf := rex.NewCall(rex.UserOp("my_udf"), sqltypes.Bool,
		rex.NewColRef("price", sqltypes.Float64))

	for i := 0; i < 3; i++ {
		ok, err := cache.IsPushable(standard)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.EqualValues(t, 1, cc.calls.Load())

	ok, err := cache.IsPushable(udf)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.EqualValues(t, 2, cc.calls.Load())

	assert.Equal(t, 2, cache.Len())
}

func TestExprCheckCacheDistinguishesInstances(t *testing.T) {
	defer utils.EnsureNoLeaks(t)

	cc := &countingClassifier{}
	cache := NewExprCheckCache(cc.classify, 0, 0)

	// Two structurally equal expressions are still two identities.
	a := rex.NewIntLiteral("1")
	b := rex.NewIntLiteral("1")

	_, err := cache.IsPushable(a)
	require.NoError(t, err)
	_, err = cache.IsPushable(b)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cc.calls.Load())
}

func TestExprCheckCacheClassifierError(t *testing.T) {
	defer utils.EnsureNoLeaks(t)

	var calls atomic.Int64
	failing := func(rex.Expr) (bool, error) {
		calls.Add(1)
		return false, federrors.New(federrors.Unknown, "classifier blew up")
	}
	cache := NewExprCheckCache(failing, 0, 0)
	expr := rex.NewIntLiteral("1")

	_, err := cache.IsPushable(expr)
	require.Error(t, err)
	assert.Equal(t, federrors.Internal, federrors.Code(err))
	assert.ErrorContains(t, err, "failure while trying to evaluate pushdown")

	// Failures are not memoized.
	_, err = cache.IsPushable(expr)
	require.Error(t, err)
	assert.EqualValues(t, 2, calls.Load())
	assert.Zero(t, cache.Len())
}

func TestExprCheckCacheTTL(t *testing.T) {
	defer utils.EnsureNoLeaks(t)

	cc := &countingClassifier{}
	cache := NewExprCheckCache(cc.classify, 10, 20*time.Millisecond)
	expr := rex.NewIntLiteral("1")

	_, err := cache.IsPushable(expr)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cc.calls.Load())

	require.Eventually(t, func() bool {
		_, ok := cache.entries.Get(identityKey(expr))
		return !ok
	}, time.Second, 10*time.Millisecond)

	_, err = cache.IsPushable(expr)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cc.calls.Load())
}

func TestExprCheckCacheSingleFlight(t *testing.T) {
	defer utils.EnsureNoLeaks(t)

	const waiters = 16

	release := make(chan struct{})
	var calls atomic.Int64
	blocking := func(rex.Expr) (bool, error) {
		calls.Add(1)
		<-release
		return true, nil
	}
	cache := NewExprCheckCache(blocking, 0, 0)
	expr := rex.NewIntLiteral("1")

	var wg sync.WaitGroup
	results := make([]bool, waiters)
	errs := make([]error, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.IsPushable(expr)
		}(i)
	}

	// Give every goroutine a chance to pile onto the same key.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < waiters; i++ {
		require.NoError(t, errs[i])
		assert.True(t, results[i])
	}
	assert.EqualValues(t, 1, calls.Load(),
		"concurrent lookups of one expression must run the classifier once")
}

func TestRegisterFlags(t *testing.T) {
	capacity, ttl := defaultExprCacheCapacity, defaultExprCacheTTL
	defer func() {
		defaultExprCacheCapacity, defaultExprCacheTTL = capacity, ttl
	}()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--pushdown-expr-cache-capacity=5",
		"--pushdown-expr-cache-ttl=1m",
	}))
	assert.Equal(t, 5, defaultExprCacheCapacity)
	assert.Equal(t, time.Minute, defaultExprCacheTTL)
}

func TestNewDefaultExprCheckCache(t *testing.T) {
	defer utils.EnsureNoLeaks(t)

	cache := NewDefaultExprCheckCache()
	ok, err := cache.IsPushable(rex.NewCall(rex.OpUpper, sqltypes.VarChar,
		rex.NewColRef("name", sqltypes.VarChar)))
	require.NoError(t, err)
	assert.True(t, ok)
}
