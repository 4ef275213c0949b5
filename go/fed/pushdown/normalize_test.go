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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fedsql.io/fedsql/go/fed/rex"
	"fedsql.io/fedsql/go/fed/sqltypes"
	"fedsql.io/fedsql/go/test/utils"
)

func TestUnwrapAggCalls(t *testing.T) {
	canonical := rex.NewAggregateCall(rex.AggSum, false, false, []int{1}, -1, sqltypes.Float64, "total")
	wrapped := rex.NewAggregateCall(rex.WrapAggFunc(rex.AggCount), true, true, []int{0}, 2, sqltypes.Int64, "cnt")

	t.Run("all canonical", func(t *testing.T) {
		calls, hasWrapped := unwrapAggCalls([]rex.AggregateCall{canonical})
		assert.False(t, hasWrapped)
		require.Len(t, calls, 1)
		assert.Same(t, rex.AggSum, calls[0].Func)
	})

	t.Run("wrapped call is rewritten in place", func(t *testing.T) {
		calls, hasWrapped := unwrapAggCalls([]rex.AggregateCall{canonical, wrapped})
		assert.True(t, hasWrapped)

		want := []rex.AggregateCall{
			canonical,
			rex.NewAggregateCall(rex.AggCount, true, true, []int{0}, 2, sqltypes.Int64, "cnt"),
		}
		utils.MustMatch(t, want, calls)
		require.Len(t, calls, 2)
		assert.Same(t, rex.AggSum, calls[0].Func)
		assert.Same(t, rex.AggCount, calls[1].Func)
	})

	t.Run("empty", func(t *testing.T) {
		calls, hasWrapped := unwrapAggCalls(nil)
		assert.False(t, hasWrapped)
		assert.Empty(t, calls)
	})
}
