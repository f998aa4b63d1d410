//go:build tools

// Package tools pins mockgen, invoked by the go:generate directives, in go.mod.
package nutzy_site

import (
	_ "go.uber.org/mock/mockgen"
)
