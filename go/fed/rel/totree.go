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
	"fmt"
	"reflect"

	"github.com/xlab/treeprint"
)

// ToTree renders the operator tree as indented text, for explain output
// and debugging.
func ToTree(op Operator) string {
	tree := asTree(op, nil)
	return tree.String()
}

func opDescr(op Operator) string {
	typ := reflect.TypeOf(op).Elem().Name()
	short := op.ShortDescription()
	if short == "" {
		return fmt.Sprintf("%s [%s]", typ, op.Target())
	}
	return fmt.Sprintf("%s (%s) [%s]", typ, short, op.Target())
}

func asTree(op Operator, root treeprint.Tree) treeprint.Tree {
	txt := opDescr(op)
	var branch treeprint.Tree
	if root == nil {
		branch = treeprint.NewWithRoot(txt)
	} else {
		branch = root.AddBranch(txt)
	}
	for _, child := range op.Inputs() {
		asTree(child, branch)
	}
	return branch
}
