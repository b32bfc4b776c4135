//go:build rrectdebug

package physics

// debugChecks enables contract assertions on collider construction.
const debugChecks = true
