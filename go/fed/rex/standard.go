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

package rex

import "fedsql.io/fedsql/go/fed/sqltypes"

// standardCastTypes are the cast targets every supported external source
// agrees on. DECIMAL is deliberately absent: precision and rounding of
// decimal casts differ between sources, so such casts stay local.
var standardCastTypes = map[sqltypes.Type]bool{
	sqltypes.Bool:      true,
	sqltypes.Int64:     true,
	sqltypes.Float64:   true,
	sqltypes.VarChar:   true,
	sqltypes.Date:      true,
	sqltypes.Timestamp: true,
}

// IsOnlyStandardExpressions reports whether the expression tree consists
// solely of constructs that every supported external SQL source can
// evaluate: literals, column references, calls to standard operators, and
// casts to standard types.
//
// The check fails closed: anything it does not positively recognize makes
// the whole expression non-standard. Its accuracy is the correctness
// boundary for pushdown - a false positive here produces a semantically
// wrong remote query.
func IsOnlyStandardExpressions(expr Expr) bool {
	return Walk(expr, func(e Expr) bool {
		switch e := e.(type) {
		case *Literal, *ColRef:
			return true
		case *Call:
			return e.Op.Kind == KindStandard
		case *Cast:
			return standardCastTypes[e.Typ]
		default:
			return false
		}
	})
}
