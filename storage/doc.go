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


// Package storage provides the persistence layer for built catalogs.
//
// A catalog is expensive to build from the raw dataset: every record is
// canonicalized and encoded. The storage layer keeps the encoded result so a
// process can start from the last build instead of the dataset.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces so callers never couple to BadgerDB:
//
//	repo, err := badger.NewCatalogRepository(backend)  // storage.CatalogRepository
//
// # Snapshots
//
// A Snapshot holds the vocabulary labels, investors, startups and the
// interaction log, plus Meta describing the build. Snapshots are written
// whole; a partially written snapshot has no Meta record and loads as
// ErrNotFound. Loading rebuilds the catalog and checks its fingerprint
// against Meta.Fingerprint.
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
