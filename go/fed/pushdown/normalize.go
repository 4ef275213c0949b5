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

import "fedsql.io/fedsql/go/fed/rex"

// unwrapAggCalls rewrites every wrapped aggregate call to an equivalent
// call referencing the canonical function directly, preserving the
// distinct and approximate flags, argument list, filter argument, result
// type and output name. Calls that are already canonical pass through
// unchanged. The second return value reports whether at least one call
// needed unwrapping.
func unwrapAggCalls(calls []rex.AggregateCall) ([]rex.AggregateCall, bool) {
	unwrapped := make([]rex.AggregateCall, 0, len(calls))
	hasWrapped := false
	for _, call := range calls {
		wrapper, ok := call.Func.(*rex.WrappedAggFunc)
		if !ok || wrapper.Wrapped == nil {
			unwrapped = append(unwrapped, call)
			continue
		}
		unwrapped = append(unwrapped, rex.NewAggregateCall(
			wrapper.Wrapped,
			call.Distinct,
			call.Approximate,
			call.Args,
			call.FilterArg,
			call.Type,
			call.Name))
		hasWrapped = true
	}
	return unwrapped, hasWrapped
}
