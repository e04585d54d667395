/*
Package token implements the asset-ledger side of the swap: fungible
token mints and the holding accounts that carry balances of them.

Token state lives inside ledger accounts owned by the token program
identity. A holding account records its mint, the authority allowed to
debit it, and its balance. The Controller moves balances between holding
accounts and closes emptied accounts, sweeping their reserve. Authority
is resolved through an x.Authenticator, so a debit can be approved either
by a transaction signer or by a program presenting a derived condition.
*/
package token
