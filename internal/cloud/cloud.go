// Package cloud holds the adapters for the third-party services the API talks
// to: messaging providers for meter alerts and the Gemini language model.
package cloud

import "errors"

// ErrNotConfigured is returned when a provider is selected without the
// credentials or destination it needs.
var ErrNotConfigured = errors.New("provider not configured")
