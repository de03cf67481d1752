/* Copyright 2024 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package core provides the core gear for information-state update:
// the containers that state is built from and a small production-rule
// interpreter.
//
// A Rule is a Precondition and an Effect.  A Precondition lazily
// produces candidate Bindings without touching any state.  Applying a
// Rule pulls at most one candidate; if there is one, the Effect is
// applied to it.  Otherwise the Rule simply didn't apply, which is
// not an error.
//
// A Group is an ordered list of Rules (or other Groups).  The first
// member that applies wins.
//
// Three operators combine Groups into an algorithm: Do (something
// must apply), Maybe (something might apply), and Repeat (apply until
// nothing applies).
//
// The containers are Stack, StackSet (a Stack without duplicates,
// where pushing an element moves it to the top), Set, and Record (a
// nested attribute tree mostly used for printing state).
package core
