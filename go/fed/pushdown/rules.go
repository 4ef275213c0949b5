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
	"fedsql.io/fedsql/go/fed/log"
	"fedsql.io/fedsql/go/fed/rel"
	"fedsql.io/fedsql/go/fed/rex"
)

// Rule decides whether one kind of relational operator can be delegated to
// an external source, and produces the delegated form.
//
// The plan search calls Matches as a cheap eligibility pre-check and fires
// Convert only on operators that matched. Convert returns (nil, nil) to
// decline: declining is not an error, it simply leaves the local
// alternative as the only candidate for the subtree. A non-nil error from
// either method is fatal for the planning attempt - it means pushdown
// safety could not be established, and an unsafe guess in either direction
// could let the search pick a semantically wrong plan.
type Rule interface {
	Matches(op rel.Operator) (bool, error)
	Convert(op rel.Operator) (rel.Operator, error)
}

// Rules returns one rule per supported operator kind, all bound to the
// given target and sharing one validity cache for the planning session.
func Rules(out *rel.External, cache *ExprCheckCache) []Rule {
	base := ruleBase{out: out, cache: cache}
	return []Rule{
		&FilterRule{ruleBase: base},
		&ProjectRule{ruleBase: base},
		&SortRule{ruleBase: base},
		&AggregateRule{ruleBase: base},
	}
}

type ruleBase struct {
	out   *rel.External
	cache *ExprCheckCache
}

// pushable reports whether every given expression is safe for the target.
func (rb *ruleBase) pushable(exprs ...rex.Expr) (bool, error) {
	for _, expr := range exprs {
		ok, err := rb.cache.IsPushable(expr)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// convertInput binds a child operator to the external target. A child that
// is already bound to the target is used as is; anything else becomes a
// placeholder that the plan search fills with its best external
// implementation of the child.
func (rb *ruleBase) convertInput(op rel.Operator) rel.Operator {
	if op.Target().External() == rb.out {
		return op
	}
	return rel.NewAlternativeSet(rb.out, op)
}

// FilterRule pushes a Filter whose condition the target can evaluate.
type FilterRule struct {
	ruleBase
}

func (r *FilterRule) Matches(op rel.Operator) (bool, error) {
	filter, ok := op.(*rel.Filter)
	if !ok || filter.Target().External() != nil {
		return false, nil
	}
	return r.pushable(filter.Condition)
}

func (r *FilterRule) Convert(op rel.Operator) (rel.Operator, error) {
	filter, ok := op.(*rel.Filter)
	if !ok {
		return nil, nil
	}
	// The condition travels unchanged; only the target binding moves.
	return rel.NewFilter(r.out, r.convertInput(filter.Source), filter.Condition), nil
}

// ProjectRule pushes a Project whose expressions the target can evaluate.
type ProjectRule struct {
	ruleBase
}

func (r *ProjectRule) Matches(op rel.Operator) (bool, error) {
	project, ok := op.(*rel.Project)
	if !ok || project.Target().External() != nil {
		return false, nil
	}
	return r.pushable(project.Exprs...)
}

func (r *ProjectRule) Convert(op rel.Operator) (rel.Operator, error) {
	project, ok := op.(*rel.Project)
	if !ok {
		return nil, nil
	}
	return rel.NewProject(r.out, r.convertInput(project.Source), project.Exprs, project.Cols), nil
}

// SortRule pushes a Sort when its keys are safe and the target dialect can
// express its offset/limit. A dialect without OFFSET/FETCH support can only
// accept an unrestricted ORDER BY.
type SortRule struct {
	ruleBase
}

func (r *SortRule) Matches(op rel.Operator) (bool, error) {
	sort, ok := op.(*rel.Sort)
	if !ok || sort.Target().External() != nil {
		return false, nil
	}
	keys := make([]rex.Expr, len(sort.Collation))
	for i, field := range sort.Collation {
		keys[i] = field.Key
	}
	ok, err := r.pushable(keys...)
	if err != nil || !ok {
		return false, err
	}

	if r.out.Dialect.SupportsOffsetFetch() {
		return true, nil
	}
	return sort.Offset == nil && sort.Limit == nil, nil
}

func (r *SortRule) Convert(op rel.Operator) (rel.Operator, error) {
	sort, ok := op.(*rel.Sort)
	if !ok {
		return nil, nil
	}
	return rel.NewSort(r.out, r.convertInput(sort.Source), sort.Collation, sort.Offset, sort.Limit), nil
}

// AggregateRule pushes an Aggregate after normalizing its calls. Unlike the
// other rules, the real work happens in Convert: Matches only checks the
// operator kind.
//
// Convert declines when the aggregate has more than one grouping set
// (GROUPING SETS and ROLLUP shapes are never pushed), and when no call
// needed unwrapping - an aggregate whose calls are all canonical already is
// left to the generic conversion rule, so two rules never compete for the
// same operator.
type AggregateRule struct {
	ruleBase
}

func (r *AggregateRule) Matches(op rel.Operator) (bool, error) {
	agg, ok := op.(*rel.Aggregate)
	return ok && agg.Target().External() == nil, nil
}

func (r *AggregateRule) Convert(op rel.Operator) (rel.Operator, error) {
	agg, ok := op.(*rel.Aggregate)
	if !ok || agg.Target().External() != nil {
		return nil, nil
	}
	if len(agg.GroupSets) != 1 {
		return nil, nil
	}
	calls, hasWrapped := unwrapAggCalls(agg.Calls)
	if !hasWrapped {
		return nil, nil
	}

	converted, err := rel.NewAggregate(r.out, r.convertInput(agg.Source), agg.Indicator, agg.GroupSet, agg.GroupSets, calls)
	if err != nil {
		// A structural rejection by the external target is a decline, not a
		// failure: the local alternative stays available.
		log.V(2).Infof("aggregate pushdown to %s declined: %v", r.out, err)
		return nil, nil
	}
	return converted, nil
}
