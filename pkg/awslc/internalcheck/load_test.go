package internalcheck

import (
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const (
	modulePattern = "github.com/hsiuhsiu/awslc-go/pkg/awslc/..."
	backendPath   = "github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
)

func loadPackages(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()
	pkgs, err := packages.Load(&packages.Config{Mode: mode}, modulePattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatal("packages contain errors")
	}
	return pkgs
}

func isInternal(path string) bool {
	return strings.Contains(path, "/internal/") || strings.HasSuffix(path, "/internalcheck")
}
