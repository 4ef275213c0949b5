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

// Package dialect encapsulates the syntax differences between the SQL
// variants spoken by external sources.
//
// A Dialect answers feature questions during rule matching (can this source
// take an OFFSET?) and renders the dialect-specific parts of a statement
// during compilation. It does not own a grammar or a parser; rendering is
// append-only writing into a strings.Builder.
package dialect

import (
	"strings"

	"fedsql.io/fedsql/go/fed/sqltypes"
)

// Dialect describes one SQL variant.
type Dialect interface {
	// Name returns the dialect name, e.g. "mysql".
	Name() string

	// SupportsOffsetFetch reports whether the dialect can express OFFSET
	// and row-limit clauses. A dialect without this support can still take
	// an unrestricted ORDER BY.
	SupportsOffsetFetch() bool

	// SupportsAggFilter reports whether the dialect accepts the standard
	// FILTER (WHERE ...) clause on aggregate calls.
	SupportsAggFilter() bool

	// WriteIdentifier writes an identifier, quoting it only when the name
	// requires quoting in this dialect.
	WriteIdentifier(sb *strings.Builder, name string)

	// WriteLiteral writes a literal value of the given type. It returns an
	// error when the dialect has no rendering for the type.
	WriteLiteral(sb *strings.Builder, typ sqltypes.Type, val string) error

	// WriteOffsetFetch writes the offset/limit clause. Only called when
	// SupportsOffsetFetch is true and at least one of the two is set.
	WriteOffsetFetch(sb *strings.Builder, offset, limit *int64)

	// FuncName maps a canonical function name to the dialect's spelling.
	// The second return value is false when the dialect does not have the
	// function at all.
	FuncName(name string) (string, bool)
}

// isSafeIdentifier reports whether name can be written without quoting:
// a leading letter or underscore, followed by letters, digits and
// underscores, and not a reserved word.
func isSafeIdentifier(name string, reserved map[string]bool) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return !reserved[strings.ToUpper(name)]
}

// commonReserved is the shared core of reserved words. Individual dialects
// extend it.
var commonReserved = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "GROUP": true,
	"HAVING": true, "ORDER": true, "BY": true, "AS": true,
	"AND": true, "OR": true, "NOT": true, "NULL": true,
	"TRUE": true, "FALSE": true, "JOIN": true, "ON": true,
	"UNION": true, "ALL": true, "DISTINCT": true, "CASE": true,
	"WHEN": true, "THEN": true, "ELSE": true, "END": true,
	"CAST": true, "LIKE": true, "IN": true, "IS": true,
	"BETWEEN": true, "EXISTS": true, "TABLE": true, "INSERT": true,
	"UPDATE": true, "DELETE": true, "OFFSET": true, "FETCH": true,
	"LIMIT": true, "DESC": true, "ASC": true, "FILTER": true,
}

func reservedWith(extra ...string) map[string]bool {
	words := make(map[string]bool, len(commonReserved)+len(extra))
	for w := range commonReserved {
		words[w] = true
	}
	for _, w := range extra {
		words[w] = true
	}
	return words
}

// writeEscaped writes val with every occurrence of quote doubled, the
// standard SQL escaping convention for quoted strings and identifiers.
func writeEscaped(sb *strings.Builder, val string, quote byte) {
	for i := 0; i < len(val); i++ {
		if val[i] == quote {
			sb.WriteByte(quote)
		}
		sb.WriteByte(val[i])
	}
}
