// Package testutil holds fixtures shared by the wikikit package tests:
// in-memory archive builders, a counting archive server and a recording
// command runner.
package testutil
