// Package filesystem provides the afero filesystems used by wikikit and a few
// helpers the provisioning packages share.
//
// Production code runs on NewOS. Tests run the fetcher, extractor and state
// store against NewMemory; symlinks are only created when the filesystem
// implements afero.Linker, which the memory filesystem does not.
package filesystem
