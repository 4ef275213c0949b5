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

package sqltypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "BIGINT", Int64.String())
	assert.Equal(t, "DOUBLE", Float64.String())
	assert.Equal(t, "VARCHAR", VarChar.String())
	assert.Equal(t, "UNKNOWN", Type(42).String())
}

func TestIsNumber(t *testing.T) {
	assert.True(t, Int64.IsNumber())
	assert.True(t, Float64.IsNumber())
	assert.True(t, Decimal.IsNumber())
	assert.False(t, VarChar.IsNumber())
	assert.False(t, Bool.IsNumber())
	assert.False(t, Null.IsNumber())
}

func TestRowType(t *testing.T) {
	rt := RowType{{Name: "name", Type: VarChar}, {Name: "price", Type: Float64}}

	assert.Equal(t, []string{"name", "price"}, rt.Names())
	assert.Equal(t, "(name VARCHAR, price DOUBLE)", rt.String())

	assert.True(t, rt.Equal(RowType{{Name: "name", Type: VarChar}, {Name: "price", Type: Float64}}))
	assert.False(t, rt.Equal(RowType{{Name: "name", Type: VarChar}}))
	assert.False(t, rt.Equal(RowType{{Name: "name", Type: VarChar}, {Name: "price", Type: Decimal}}))
	assert.False(t, rt.Equal(RowType{{Name: "price", Type: Float64}, {Name: "name", Type: VarChar}}))
}
