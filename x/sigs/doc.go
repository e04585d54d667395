/*
Package sigs provides the signature side of authorization.

The enclosing ledger verifies transaction signatures before the program
runs; the program itself only sees which account addresses were signers.
This package turns that information into an x.Authenticator: the dispatch
layer stores the signer addresses in the context and handlers query them
through Authenticate.

It also provides ed25519 key types whose public keys map into the
"sigs/ed25519" condition namespace. Because escrow authorities are derived
in a different namespace, no signing key can ever produce a program-derived
address.
*/
package sigs
