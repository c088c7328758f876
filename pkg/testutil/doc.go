// Package testutil provides rule fixtures shared by the package tests.
//
// Fixtures are built in memory over the default pattern; tests that need
// persisted settings write them to t.TempDir() themselves.
package testutil
