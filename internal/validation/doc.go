// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. It integrates
// with the API error envelope for consistent error responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Comprehensive error translation to human-readable messages
//   - APIError conversion matching the response envelope
//   - Built-in validator support (dive, oneof, gte/lte ranges, etc.)
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type PlaylistRequest struct {
//	    SeedTrackIDs []string `validate:"required,min=1,max=50,dive,min=1,max=256"`
//	    Count        int      `validate:"omitempty,gte=1,lte=100"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req PlaylistRequest
//	    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
//	        // handle decode error
//	    }
//
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        // write apiErr through the response envelope
//	        return
//	    }
//
//	    // proceed with valid request
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - min=n: Minimum length n characters
//   - max=n: Maximum length n characters
//
// Numeric validations:
//   - gte=n: Greater than or equal to n
//   - lte=n: Less than or equal to n
//   - gt=n: Greater than n
//   - lt=n: Less than n
//
// Collection validations:
//   - min=n / max=n: Bounds on element count
//   - dive: Apply the following tags to each element
//   - oneof=a b c: Must be one of the specified values
//
// # Error Types
//
// ValidationError represents a single field validation failure:
//
//	type ValidationError struct {
//	    Field()   string      // Struct field name
//	    Tag()     string      // Validation tag that failed
//	    Param()   string      // Tag parameter (e.g., "100" for max=100)
//	    Value()   interface{} // Actual value that failed
//	    Error()   string      // Human-readable message
//	}
//
// RequestValidationError aggregates multiple field errors:
//
//	type RequestValidationError struct {
//	    Errors() []ValidationError
//	    Error()  string           // Combined message
//	    ToAPIError() *APIError    // Convert to API error format
//	}
//
// # API Error Integration
//
// The ToAPIError method produces errors matching the response envelope:
//
//	// Single field error
//	{
//	    "code": "VALIDATION_FAILED",
//	    "message": "CurrentTrackID is required",
//	    "details": {"field": "CurrentTrackID", "tag": "required", "value": ""}
//	}
//
//	// Multiple field errors
//	{
//	    "code": "VALIDATION_FAILED",
//	    "message": "SeedTrackIDs must contain at least 1 items; Count must be less than or equal to 100",
//	    "details": {
//	        "fields": [
//	            {"field": "SeedTrackIDs", "tag": "min", "message": "..."},
//	            {"field": "Count", "tag": "lte", "message": "..."}
//	        ]
//	    }
//	}
//
// # Error Message Translation
//
// Human-readable messages are generated for common validation tags:
//
//	required   -> "CurrentTrackID is required"
//	min=1      -> "Prefix must be at least 1 characters"
//	max=256    -> "CurrentTrackID must be at most 256 characters"
//	gte=2      -> "Steps must be greater than or equal to 2"
//	lte=20     -> "Steps must be less than or equal to 20"
//	oneof=a b  -> "Source must be one of: a b"
//
// # Struct Tag Examples
//
// Navigation request validation:
//
//	type WormholeRequest struct {
//	    From  string `validate:"required,min=1,max=256"`
//	    To    string `validate:"required,min=1,max=256"`
//	    Steps int    `validate:"omitempty,gte=2,lte=20"`
//	}
//
// Pagination:
//
//	type ListTracksRequest struct {
//	    Limit  int `validate:"min=1,max=1000"`
//	    Offset int `validate:"min=0,max=1000000"`
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()  // Thread-safe
//	err := validation.ValidateStruct(&req) // Thread-safe
//
// # Performance
//
// The validator caches struct reflection information:
//   - First validation of a struct type: ~1ms (reflection + caching)
//   - Subsequent validations: ~10us (cached)
//   - Memory: ~500 bytes per cached struct type
//
// # See Also
//
//   - internal/api: Request handlers using validation
//   - github.com/go-playground/validator/v10: Underlying library
package validation
