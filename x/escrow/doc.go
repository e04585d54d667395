/*
Package escrow implements the token-swap escrow lifecycle.

A maker opens an offer with Make: a record account derived from
("escrow", maker, bump) is allocated and funded, and the offered tokens
move into a vault whose authority is the record's derived address. Any
taker may then complete the trade with Take, which pays the maker the
demanded amount and releases the whole vault to the taker, or the maker
may Refund to reclaim the deposit. Take and Refund both tear down the
vault and the record, sweeping all reserves back to the maker, so each
offer can be settled exactly once.

The record never stores the deposited amount; the vault's live balance is
the single source of truth for custody.
*/
package escrow
