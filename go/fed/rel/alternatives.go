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

package rel

import (
	"fedsql.io/fedsql/go/fed/federrors"
	"fedsql.io/fedsql/go/fed/sqltypes"
)

// AlternativeSet is a placeholder standing for a group of interchangeable
// implementations of Input on the bound target. The plan search creates
// these when a rule asks for a child on a different target than the child
// currently has, and commits a winner once its cost comparison converges.
//
// An AlternativeSet behaves as a leaf: whatever is below it belongs to the
// search, not to the tree being rewritten.
type AlternativeSet struct {
	// Input is the operator the alternatives implement.
	Input Operator
	// Best is the committed winner, nil while the search is still running.
	Best Operator

	target Target
}

// NewAlternativeSet returns an uncommitted placeholder for input on target.
func NewAlternativeSet(target Target, input Operator) *AlternativeSet {
	return &AlternativeSet{Input: input, target: target}
}

// Commit records the winning implementation.
func (a *AlternativeSet) Commit(best Operator) { a.Best = best }

func (a *AlternativeSet) Inputs() []Operator { return nil }

func (a *AlternativeSet) Clone(inputs []Operator) Operator {
	checkSize(inputs, 0)
	clone := *a
	return &clone
}

func (a *AlternativeSet) RowType() sqltypes.RowType { return a.Input.RowType() }
func (a *AlternativeSet) Target() Target            { return a.target }

func (a *AlternativeSet) ShortDescription() string {
	if a.Best == nil {
		return "uncommitted"
	}
	return "committed"
}

// ResolveAlternatives returns a tree with every AlternativeSet replaced by
// its committed winner, recursively - winners may themselves contain
// placeholders at any depth. The input tree is not modified.
//
// It fails if any placeholder in the tree is still uncommitted. Running
// this pass is what lets the fragment compiler assume it never sees a
// placeholder.
func ResolveAlternatives(op Operator) (Operator, error) {
	if alt, ok := op.(*AlternativeSet); ok {
		if alt.Best == nil {
			return nil, federrors.Errorf(federrors.FailedPrecondition, "placeholder for %T is still uncommitted", alt.Input)
		}
		return ResolveAlternatives(alt.Best)
	}

	oldInputs := op.Inputs()
	newInputs := make([]Operator, len(oldInputs))
	for i, input := range oldInputs {
		resolved, err := ResolveAlternatives(input)
		if err != nil {
			return nil, err
		}
		newInputs[i] = resolved
	}
	return op.Clone(newInputs), nil
}
