// Package circuits contains the circuitlab exercise circuits: the Fibonacci
// recurrence in two gate flavors, a brute-force polynomial range check, and a
// range check by limb decomposition against an in-circuit lookup table.
//
// Each circuit carries its compile-time parameters as plain struct fields
// next to the witness variables; the parameters must be set both on the
// circuit passed to frontend.Compile and on every assignment.
package circuits
