//go:build tools

package tools

// cmd/gendoc is excluded from normal builds, so cobra/doc is pinned here.
import (
	_ "github.com/spf13/cobra/doc"
)
