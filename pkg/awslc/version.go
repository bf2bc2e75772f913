package awslc

import "github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"

var (
	Version     = "v0.0.0-in-progress"
	UpstreamSHA = "unknown"
	UpstreamDir = "aws-lc"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// EngineVersion returns the version string reported by the engine, falling
// back to the pinned upstream commit SHA.
func EngineVersion() string {
	if v := backend.Version(); v != "" {
		return v
	}
	return UpstreamSHA
}
