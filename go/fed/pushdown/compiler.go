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
	"strings"

	"fedsql.io/fedsql/go/fed/federrors"
	"fedsql.io/fedsql/go/fed/rel"
)

// Compile renders a finalized pushdown subtree into exactly one SQL
// statement for the subtree's external target.
//
// The input must be fully resolved: every operator bound to the same
// external target, no AlternativeSet placeholder remaining anywhere in the
// tree. Callers run rel.ResolveAlternatives first; Finalize does both
// steps. Violations are reported as FAILED_PRECONDITION errors, which
// abort the pushdown attempt for this subtree only - the surrounding
// search keeps the local alternative.
func Compile(root rel.Operator) (*PushedPlanFragment, error) {
	out := root.Target().External()
	if out == nil {
		return nil, federrors.New(federrors.FailedPrecondition, "cannot compile an operator bound to the local target")
	}
	err := rel.VisitTopDown(root, func(op rel.Operator) error {
		if _, ok := op.(*rel.AlternativeSet); ok {
			return federrors.New(federrors.FailedPrecondition, "unresolved placeholder in pushed subtree")
		}
		if op.Target().External() != out {
			return federrors.Errorf(federrors.FailedPrecondition, "%T is bound to %s, expected %s", op, op.Target(), out)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	qb := &queryBuilder{out: out}
	if err := buildQuery(root, qb); err != nil {
		return nil, err
	}

	var sb strings.Builder
	if err := serializeSelect(&sb, qb.stmt, out.Dialect); err != nil {
		return nil, err
	}

	return &PushedPlanFragment{
		SQL:         sb.String(),
		RowType:     root.RowType(),
		RowEstimate: rel.RowCount(root),
		Target:      out,
	}, nil
}

// Finalize resolves the committed alternatives in a pushdown subtree,
// compiles it, and wraps the result into the opaque operator the execution
// engine runs.
func Finalize(root rel.Operator) (*ExternalScan, error) {
	resolved, err := rel.ResolveAlternatives(root)
	if err != nil {
		return nil, err
	}
	fragment, err := Compile(resolved)
	if err != nil {
		return nil, err
	}
	return NewExternalScan(fragment), nil
}
