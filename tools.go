//go:build tools
// +build tools

// Package main pins tool dependencies to go.mod.
// See https://go.dev/wiki/Modules#how-can-i-track-tool-dependencies-for-a-module
package main

import (
	// swag generates OpenAPI docs from handler annotations
	_ "github.com/swaggo/swag"
)
