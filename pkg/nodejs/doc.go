// Package nodejs acquires the Node.js runtime distribution for an install.
//
// The distribution is picked from an explicit paths.Platform rather than the
// build target, so one binary can provision for another platform and tests
// can exercise every branch. The archive path is recorded at download time
// and reused on later runs.
package nodejs
