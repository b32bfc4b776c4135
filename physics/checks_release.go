//go:build !rrectdebug

package physics

const debugChecks = false
