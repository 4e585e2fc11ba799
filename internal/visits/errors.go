// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package visits

import "errors"

var (
	// ErrValidation means the report itself is unacceptable.
	ErrValidation = errors.New("invalid visit report")

	// ErrDependency means the store failed while it claimed to be ready.
	ErrDependency = errors.New("visit store failure")
)
