/*
Package errors implements custom error interfaces for the program.

The idea is to reuse as many errors declared here as possible and declare
a new error class only when necessary. Each error is registered with a
unique numeric code that is returned to the caller when an instruction is
rejected, so clients can test failures without parsing error strings.

Use Wrap and Wrapf to add context to an error without changing its class.
Use the Is method of a registered error to test what class an error
belongs to, regardless of how many times it was wrapped.
*/
package errors
