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


// Package core defines the domain records shared by every helpmatch package.
//
// Volunteer and HelpRequest are plain typed records. Loaders normalize them
// once, at the storage boundary, with NormalizeVolunteer and
// NormalizeHelpRequest; the matching engine relies on that and performs no
// missing-value checks of its own.
//
// Identifiers are opaque strings of the form PREFIX_N, allocated by NextID.
// Fingerprints are content digests used to key cached embeddings.
package core
