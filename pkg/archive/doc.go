// Package archive extracts the zip and compressed tar archives that the
// wiki runtime and bundles are distributed as.
//
// The format is chosen from the file extension. Every entry name is
// sanitised so nothing is written outside the destination directory, and
// the top-level name of the first entry is returned as the archive root so
// callers can find the extracted tree without knowing version-specific
// directory names.
//
// Extraction is skipped, for every format alike, when the first entry is
// already present under the destination or when the Manifest records the
// archive with a root that still exists.
package archive
