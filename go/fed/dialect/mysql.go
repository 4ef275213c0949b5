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
	"strconv"
	"strings"

	"fedsql.io/fedsql/go/fed/federrors"
	"fedsql.io/fedsql/go/fed/sqltypes"
)

// mysql renders MySQL syntax: backtick quoting, LIMIT/OFFSET, no FILTER
// clause on aggregates.
type mysql struct {
	reserved map[string]bool
	funcs    map[string]string
}

// MySQL returns the MySQL dialect.
func MySQL() Dialect {
	return &mysql{
		reserved: reservedWith("KEY", "INDEX", "SHOW", "USE", "DATABASE"),
		funcs: map[string]string{
			"UPPER": "UPPER", "LOWER": "LOWER", "CONCAT": "CONCAT",
			"ABS": "ABS", "MOD": "MOD",
			"COUNT": "COUNT", "SUM": "SUM", "MIN": "MIN",
			"MAX": "MAX", "AVG": "AVG",
		},
	}
}

func (*mysql) Name() string              { return "mysql" }
func (*mysql) SupportsOffsetFetch() bool { return true }
func (*mysql) SupportsAggFilter() bool   { return false }

func (d *mysql) WriteIdentifier(sb *strings.Builder, name string) {
	if isSafeIdentifier(name, d.reserved) {
		sb.WriteString(name)
		return
	}
	sb.WriteByte('`')
	writeEscaped(sb, name, '`')
	sb.WriteByte('`')
}

func (d *mysql) WriteLiteral(sb *strings.Builder, typ sqltypes.Type, val string) error {
	switch typ {
	case sqltypes.Null:
		sb.WriteString("NULL")
	case sqltypes.Bool:
		sb.WriteString(strings.ToUpper(val))
	case sqltypes.Int64, sqltypes.Float64, sqltypes.Decimal:
		sb.WriteString(val)
	case sqltypes.VarChar:
		sb.WriteByte('\'')
		writeEscaped(sb, val, '\'')
		sb.WriteByte('\'')
	case sqltypes.Date:
		sb.WriteString("DATE '")
		writeEscaped(sb, val, '\'')
		sb.WriteByte('\'')
	case sqltypes.Timestamp:
		sb.WriteString("TIMESTAMP '")
		writeEscaped(sb, val, '\'')
		sb.WriteByte('\'')
	default:
		return federrors.Errorf(federrors.InvalidArgument, "dialect %s cannot render a literal of type %s", d.Name(), typ)
	}
	return nil
}

// WriteOffsetFetch renders MySQL's LIMIT clause. MySQL has no way to write
// an offset without a limit, so a bare offset gets the documented
// "very large number" row count.
func (d *mysql) WriteOffsetFetch(sb *strings.Builder, offset, limit *int64) {
	sb.WriteString(" LIMIT ")
	if limit != nil {
		sb.WriteString(strconv.FormatInt(*limit, 10))
	} else {
		sb.WriteString("18446744073709551615")
	}
	if offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.FormatInt(*offset, 10))
	}
}

func (d *mysql) FuncName(name string) (string, bool) {
	mapped, ok := d.funcs[name]
	return mapped, ok
}
