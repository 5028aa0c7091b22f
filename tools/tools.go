//go:build tools

// Package tools lists the developer tools used while working on megabox-web.
// They are run with `go run` or installed with `go install` and are not linked into any binary.
package tools

// mockgen regenerates internal/mocks from internal/ports:
//
//	go generate ./internal/mocks
//
// Air reloads cmd/megabox-web on template or Go changes with DEV=true:
//
//	go install github.com/air-verse/air@v1.63.0
