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

package federrors

// ErrorCode classifies an error. The values follow the canonical RPC code names
// so they translate directly if an error ever crosses a service boundary.
type ErrorCode int

const (
	// OK is not a valid code for an error; it is the zero value of ErrorCode.
	OK ErrorCode = iota
	// Unknown is the code of errors that did not originate in this codebase
	// and carry no explicit code.
	Unknown
	// InvalidArgument indicates the caller specified an invalid argument,
	// such as asking a dialect to render a construct it does not support.
	InvalidArgument
	// FailedPrecondition indicates the operation was rejected because the
	// system is not in a state required for its execution, such as compiling
	// a tree that still contains unresolved alternatives.
	FailedPrecondition
	// Unimplemented indicates the requested operation is not supported.
	Unimplemented
	// Internal means some invariant expected by the underlying system has
	// been broken.
	Internal
)

var codeNames = map[ErrorCode]string{
	OK:                 "OK",
	Unknown:            "UNKNOWN",
	InvalidArgument:    "INVALID_ARGUMENT",
	FailedPrecondition: "FAILED_PRECONDITION",
	Unimplemented:      "UNIMPLEMENTED",
	Internal:           "INTERNAL",
}

// String returns the canonical name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
