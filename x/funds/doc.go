/*
Package funds implements a minimal wallet ledger.

Every account is identified by an address and holds a single non-negative
integer balance of whole value units. The Controller moves value between
accounts and is the collaborator consumed by the split extension for all
transfers. A send message is registered so wallets are operable on their
own as well.
*/
package funds
