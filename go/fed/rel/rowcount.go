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

// Selectivity and reduction defaults used when no statistics are available.
// These only need to rank plans consistently, they are not measurements.
const (
	defaultFilterSelectivity  = 0.5
	defaultGroupingReduction  = 0.25
	defaultTableScanRowsGuess = 1000
)

// RowCount estimates the number of rows an operator produces.
func RowCount(op Operator) float64 {
	switch op := op.(type) {
	case *TableScan:
		if op.BaseRows > 0 {
			return op.BaseRows
		}
		return defaultTableScanRowsGuess
	case *Filter:
		return RowCount(op.Source) * defaultFilterSelectivity
	case *Project:
		return RowCount(op.Source)
	case *Aggregate:
		if len(op.GroupSet) == 0 {
			return 1
		}
		rows := RowCount(op.Source) * defaultGroupingReduction
		if rows < 1 {
			return 1
		}
		return rows
	case *Sort:
		rows := RowCount(op.Source)
		if op.Offset != nil {
			rows -= float64(*op.Offset)
			if rows < 0 {
				rows = 0
			}
		}
		if op.Limit != nil && rows > float64(*op.Limit) {
			rows = float64(*op.Limit)
		}
		return rows
	case *AlternativeSet:
		if op.Best != nil {
			return RowCount(op.Best)
		}
		return RowCount(op.Input)
	default:
		inputs := op.Inputs()
		if len(inputs) == 1 {
			return RowCount(inputs[0])
		}
		return defaultTableScanRowsGuess
	}
}
