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

	"fedsql.io/fedsql/go/fed/rel"
	"fedsql.io/fedsql/go/fed/sqltypes"
)

// PushedPlanFragment is the terminal artifact of a pushdown: one SQL
// statement, the row shape it produces, the planner's row estimate for it,
// and the target that will run it. It is built once, when a pushdown
// subtree is finalized, and never modified afterwards.
type PushedPlanFragment struct {
	SQL         string
	RowType     sqltypes.RowType
	RowEstimate float64
	Target      *rel.External
}

// ExternalScan is the opaque physical operator wrapping a compiled
// fragment. The execution engine runs it like any other leaf: it sends the
// SQL to the fragment's target and streams the result rows back.
type ExternalScan struct {
	fragment *PushedPlanFragment
}

// NewExternalScan wraps a compiled fragment.
func NewExternalScan(fragment *PushedPlanFragment) *ExternalScan {
	return &ExternalScan{fragment: fragment}
}

// Fragment returns the compiled fragment.
func (e *ExternalScan) Fragment() *PushedPlanFragment { return e.fragment }

func (e *ExternalScan) Inputs() []rel.Operator { return nil }

func (e *ExternalScan) Clone(inputs []rel.Operator) rel.Operator {
	if len(inputs) != 0 {
		panic(fmt.Sprintf("BUG: got the wrong number of inputs: got %d, expected 0", len(inputs)))
	}
	clone := *e
	return &clone
}

func (e *ExternalScan) RowType() sqltypes.RowType { return e.fragment.RowType }

// Target returns the local target: the scan itself runs on the local
// engine, it is the SQL inside that runs remotely.
func (e *ExternalScan) Target() rel.Target { return rel.Local() }

func (e *ExternalScan) ShortDescription() string {
	return fmt.Sprintf("%s: %s", e.fragment.Target.Name, e.fragment.SQL)
}

// Explain returns the human-readable description surfaced in query plans.
func (e *ExternalScan) Explain() string {
	return fmt.Sprintf("ExternalScan(target: %s, rows: %.0f, sql: %s)",
		e.fragment.Target.Name, e.fragment.RowEstimate, e.fragment.SQL)
}
