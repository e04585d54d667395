/*
Package tokenswap holds the kernel types shared by all packages of the
token-swap escrow program: addresses and conditions, the key-value store
interfaces, the instruction envelope handed to the program by the ledger,
and the handler contract.

The program implements a trustless two-party token swap. A maker locks an
amount of one token in a vault controlled by a derived, program-scoped
address and records how much of another token they want in return. Any
taker may later complete the trade atomically, or the maker may cancel and
reclaim the deposit. Extensions under x/ implement the ledger account
model, the token transfer service and the escrow handlers themselves;
app/ wires them behind the one-byte operation dispatch.
*/
package tokenswap
