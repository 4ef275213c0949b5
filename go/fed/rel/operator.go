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

// Package rel contains the relational operators the planner works on.
/*
An operator tree arrives from the plan search bound to the local target.
Pushdown rules inspect subtrees and, when a subtree is legal for an external
source, produce a new tree bound to that source - operators are never
mutated in place. At branches where the search still has interchangeable
candidates, the tree holds AlternativeSet placeholders; these are resolved
to the committed winner before a pushed subtree is compiled to SQL.
*/
package rel

import (
	"fmt"

	"fedsql.io/fedsql/go/fed/sqltypes"
)

// Operator forms the tree of relational operators representing the query.
//
// All implementations are immutable from the planner's point of view:
// transformations build new operators with Clone and never write to an
// operator another rule might be looking at.
type Operator interface {
	// Inputs returns the child operators, in order.
	Inputs() []Operator

	// Clone returns a copy of the operator with the given inputs. The
	// number of inputs must match the operator's arity.
	Clone(inputs []Operator) Operator

	// RowType describes the rows the operator produces.
	RowType() sqltypes.RowType

	// Target is the execution target the operator is bound to.
	Target() Target

	// ShortDescription is used when describing the operator in tree form.
	ShortDescription() string
}

// VisitTopDown visits root and all operators below it, breadth first.
func VisitTopDown(root Operator, visitor func(Operator) error) error {
	queue := []Operator{root}
	for len(queue) > 0 {
		this := queue[0]
		queue = append(queue[1:], this.Inputs()...)
		if err := visitor(this); err != nil {
			return err
		}
	}
	return nil
}

// RewriteBottomUp rewrites the tree from the leaves upward. The rewriter
// receives each operator after its inputs have been rewritten; it returns
// the replacement operator and whether anything changed.
func RewriteBottomUp(root Operator, rewriter func(Operator) (Operator, bool, error)) (Operator, bool, error) {
	oldInputs := root.Inputs()
	anythingChanged := false
	newInputs := make([]Operator, len(oldInputs))
	for i, operator := range oldInputs {
		in, changed, err := RewriteBottomUp(operator, rewriter)
		if err != nil {
			return nil, false, err
		}
		if changed {
			anythingChanged = true
		}
		newInputs[i] = in
	}

	if anythingChanged {
		root = root.Clone(newInputs)
	}

	newOp, changed, err := rewriter(root)
	if err != nil {
		return nil, false, err
	}
	return newOp, anythingChanged || changed, nil
}

// CloneTree deep-copies an operator tree.
func CloneTree(op Operator) Operator {
	inputs := op.Inputs()
	clones := make([]Operator, len(inputs))
	for i, input := range inputs {
		clones[i] = CloneTree(input)
	}
	return op.Clone(clones)
}

func checkSize(inputs []Operator, shouldBe int) {
	if len(inputs) != shouldBe {
		panic(fmt.Sprintf("BUG: got the wrong number of inputs: got %d, expected %d", len(inputs), shouldBe))
	}
}
