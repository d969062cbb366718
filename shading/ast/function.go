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

// Call is an expression that invokes a named function (built-in or
// user-defined) with a set of arguments: «target(arguments)».
type Call struct {
	Target    *Identifier // the name of the function to invoke
	Arguments []Node      // the arguments to the function
}

func (Call) isNode() {}
