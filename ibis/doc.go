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

// Package ibis is an issue-based information-state dialogue manager.
//
// The dialogue's state is an InfoState: a private part (an agenda of
// things to do, the active plan, and private beliefs) and a shared
// part (common ground, the questions under discussion, and the latest
// utterance).  A DME ("dialogue move engine") drives a fixed turn
// loop that selects what to say, says it, listens, and updates the
// InfoState using the update and selection rules in this package.
//
// What the dialogue is about comes from a Domain, which knows which
// answers are relevant to which questions and which plans address
// which questions.  StdDomain is a Domain built from registries of
// predicates, sorts, and individuals.  Facts come from a Database,
// and text is turned into moves (and back again) by a Grammar.
//
// Semantic objects have compact string forms.  Questions look like
// "?x.price(x)" (wh-question), "?return()" (yes/no question), and
// "{?a(x) | ?b(x)}" (alternative question).  Answers look like "yes",
// "paris", "-paris", and "dest_city(paris)".  Moves look like
// "Ask('?x.price(x)')" or "greet".
package ibis
