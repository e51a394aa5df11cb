// Package scenario holds the four release-order demonstrations and the
// runner that executes them.
//
//	A  three siblings in one scope drop in reverse: C, B, A
//	B  an explicit drop fires immediately; an inner scope ends before the outer
//	C  a moved guard drops at the end of the function that received it
//	D  clearing a Vec drops its elements last-in first, the Vec stays usable
//
// Each scenario gets a fresh lifetime.Runtime, so no state is shared between
// them. After each one the runner checks that every guard was released.
package scenario
