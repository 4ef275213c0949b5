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
	"math"

	"fedsql.io/fedsql/go/fed/rel"
)

// sortPushdownCostFactor scales the self-cost of an external Sort. Sorting
// inside the source is assumed far cheaper than re-sorting locally, so the
// factor is set below every local operator's cost to steer the search
// toward pushdown whenever it is legal. This is a static preference, not a
// measured cost.
const sortPushdownCostFactor = 0.01

// SelfCost estimates the cost of executing one operator, excluding its
// inputs. The numbers follow the row-count model in rel: a single pass over
// the input for the row-at-a-time operators, n·log(n) for sorts.
func SelfCost(op rel.Operator) float64 {
	switch op := op.(type) {
	case *rel.TableScan:
		return rel.RowCount(op)
	case *rel.Filter:
		return rel.RowCount(op.Source)
	case *rel.Project:
		return rel.RowCount(op.Source)
	case *rel.Aggregate:
		return rel.RowCount(op.Source)
	case *rel.Sort:
		cost := sortCost(rel.RowCount(op.Source))
		if op.Target().External() != nil {
			cost *= sortPushdownCostFactor
		}
		return cost
	case *rel.AlternativeSet:
		// The committed alternative carries its own cost.
		return 0
	default:
		return rel.RowCount(op)
	}
}

// CostOf sums the self-costs of every operator in the tree.
func CostOf(op rel.Operator) float64 {
	var cost float64
	_ = rel.VisitTopDown(op, func(op rel.Operator) error {
		cost += SelfCost(op)
		return nil
	})
	return cost
}

func sortCost(rows float64) float64 {
	if rows < 1 {
		rows = 1
	}
	return rows * math.Log2(rows+1)
}
