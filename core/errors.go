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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidInvestor indicates an Investor failed validation.
	ErrInvalidInvestor = errors.New("invalid investor")

	// ErrInvalidStartup indicates a Startup failed validation.
	ErrInvalidStartup = errors.New("invalid startup")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyStartupID indicates a startup has no identifier.
	ErrEmptyStartupID = errors.New("startup id cannot be empty")

	// ErrBundleWidth indicates an encoded vector does not match its vocabulary width.
	ErrBundleWidth = errors.New("feature vector width mismatch")

	// ErrUnknownRecommender indicates an unsupported recommender type.
	ErrUnknownRecommender = errors.New("unknown recommender type")
)
