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

package dialect

import (
	"strings"

	"fedsql.io/fedsql/go/fed/federrors"
	"fedsql.io/fedsql/go/fed/sqltypes"
)

// tsql renders Transact-SQL as spoken by SQL Server 2008 era sources:
// bracket quoting, no OFFSET/FETCH, no FILTER clause, no boolean literals.
type tsql struct {
	reserved map[string]bool
	funcs    map[string]string
}

// LegacyTSQL returns the dialect for older SQL Server sources. Sorts with
// an offset or a row limit cannot be pushed to these.
func LegacyTSQL() Dialect {
	return &tsql{
		reserved: reservedWith("TOP", "GO", "EXEC", "IDENTITY"),
		funcs: map[string]string{
			"UPPER": "UPPER", "LOWER": "LOWER", "CONCAT": "CONCAT",
			"ABS": "ABS",
			"COUNT": "COUNT", "SUM": "SUM", "MIN": "MIN",
			"MAX": "MAX", "AVG": "AVG",
		},
	}
}

func (*tsql) Name() string              { return "tsql" }
func (*tsql) SupportsOffsetFetch() bool { return false }
func (*tsql) SupportsAggFilter() bool   { return false }

func (d *tsql) WriteIdentifier(sb *strings.Builder, name string) {
	if isSafeIdentifier(name, d.reserved) {
		sb.WriteString(name)
		return
	}
	sb.WriteByte('[')
	writeEscaped(sb, name, ']')
	sb.WriteByte(']')
}

func (d *tsql) WriteLiteral(sb *strings.Builder, typ sqltypes.Type, val string) error {
	switch typ {
	case sqltypes.Null:
		sb.WriteString("NULL")
	case sqltypes.Int64, sqltypes.Float64, sqltypes.Decimal:
		sb.WriteString(val)
	case sqltypes.VarChar:
		sb.WriteByte('\'')
		writeEscaped(sb, val, '\'')
		sb.WriteByte('\'')
	default:
		// No boolean or date literal syntax in this generation of the
		// dialect; such fragments stay local.
		return federrors.Errorf(federrors.InvalidArgument, "dialect %s cannot render a literal of type %s", d.Name(), typ)
	}
	return nil
}

func (d *tsql) WriteOffsetFetch(sb *strings.Builder, offset, limit *int64) {
	// Never called: SupportsOffsetFetch is false, so the Sort rule keeps
	// offset/limit sorts local.
}

func (d *tsql) FuncName(name string) (string, bool) {
	mapped, ok := d.funcs[name]
	return mapped, ok
}
