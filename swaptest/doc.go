// Package swaptest provides mocks and fixture builders shared by tests
// across the program's packages.
package swaptest
