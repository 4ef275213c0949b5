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

import "fedsql.io/fedsql/go/fed/dialect"

// Target is the execution target an operator is bound to: the local engine,
// or one external SQL source.
type Target interface {
	// External returns the external source the target stands for, or nil
	// for the local engine.
	External() *External
	String() string
}

type localTarget struct{}

func (localTarget) External() *External { return nil }
func (localTarget) String() string      { return "local" }

var local Target = localTarget{}

// Local returns the local execution target.
func Local() Target { return local }

// External identifies one external SQL source. A single *External instance
// is shared by every operator bound to that source within a planning
// session, so targets can be compared with ==.
type External struct {
	// Name identifies the source connection.
	Name string
	// Dialect is the SQL dialect the source speaks.
	Dialect dialect.Dialect
}

// NewExternal returns the target for an external source.
func NewExternal(name string, d dialect.Dialect) *External {
	return &External{Name: name, Dialect: d}
}

func (e *External) External() *External { return e }

func (e *External) String() string {
	return "external:" + e.Name
}
