// Package linker wires the extracted bundles together with the runtime's
// package manager.
//
// The work is an ordered list of steps (install client and server
// dependencies, npm link each into the wiki, install the wiki's own
// dependencies). Each step carries a status that the caller persists, so a
// create that failed halfway resumes at the first step that is not done.
package linker
