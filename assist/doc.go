// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package assist implements the tiered answer cascade at the heart of the
// assistant.
//
// A query walks an ordered sequence of corpus lookups, each a fallback for
// the previous:
//
//  1. IT-service catalog: a single confident match answers immediately,
//     with a clarifying preamble naming the matched service.
//  2. General knowledge base: confident chunks ground a generated answer;
//     merely suggestible ones surface as alphabetized topic suggestions.
//  3. Routing examples: a strong match forwards the request to the
//     example's department; weak matches surface department suggestions.
//  4. Default fallback: the query is appended to the unrecognized-query
//     log and the employee gets the support contacts.
//
// Two pure helpers support the cascade and are exported for reuse:
// Classify grades a retrieval batch against a Thresholds pair, and
// ResolveLatestVersions collapses re-ingested documents to their newest
// copy. The knowledge and routing stages classify against independent
// threshold sets; see DefaultKnowledgeThresholds and
// DefaultRoutingThresholds.
package assist
