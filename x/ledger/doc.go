/*
Package ledger implements the account model of the surrounding ledger as
seen by the program: every account has an owner program, a reserve backing
its storage allocation, and opaque data bytes.

The package plays the role of the system program. CreateAccount allocates
a new program-owned account funded from an existing account's reserve, and
CloseAndSweep atomically moves an account's whole reserve to a destination
while destroying the record, so there is never a window where the reserve
is zeroed but not yet credited.
*/
package ledger
