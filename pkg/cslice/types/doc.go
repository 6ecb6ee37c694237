// Package types holds the interfaces and sentinel errors shared by every
// cslice package. It has no dependencies of its own so that plan, cell,
// logging and metrics can all import it without cycles.
package types
