// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

// Invalid represents a syntax error recovery placeholder, substituted for an
// expression the parser could not make sense of so that parsing can
// continue and report further errors.
type Invalid struct {
	ignore bool // field added so the instances get a unique address
}

func (Invalid) isNode() {}

// Sentinel placeholders substituted by the parser on recoverable syntax
// errors, so that a single bad token does not abort the whole parse.
var (
	InvalidIdentifier = &Identifier{Value: "<invalid>"}
	InvalidNumber     = &Number{Value: "0"}
	InvalidString     = &String{Value: ""}
	InvalidType       = &TypeRef{Name: InvalidIdentifier}
)
