// Package uniuri produces uniformly distributed random strings from
// crypto/rand, used for generated credentials and identifiers. Bytes outside
// the usable range are rejected rather than reduced, so no character of the
// alphabet is favored.
package uniuri
