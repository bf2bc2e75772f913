package awslc

import "github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"

// ZeroizeBytes overwrites buf with zeros through the engine's cleanse
// routine, which the compiler cannot elide.
//
// Go's garbage collector may have copied the slice earlier; this only
// clears the backing array the caller holds.
func ZeroizeBytes(buf []byte) {
	backend.Cleanse(buf)
}
