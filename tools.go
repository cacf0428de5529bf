//go:build tools

package tools

// Tool dependencies, tracked so `go mod tidy` keeps them pinned.
// Run `go run github.com/vektra/mockery/v2` from the repo root to
// regenerate the mocks under pkg/power/mocks and pkg/advertise/mocks.
import (
	_ "github.com/vektra/mockery/v2"
)
