/*
Package payinbox defines the common interfaces that tie the protocol
packages together, as well as implementations of some of the simpler
components (when interfaces would be too much overhead).

The custody ledger is a conditional-payment primitive: a sender locks
tokens under a record addressed by a recipient fingerprint, and the
tokens can be released only by presenting the matching claim code
before the record expires. Everything an operation needs from the host
is passed explicitly: a BlockInfo with the canonical time source, a
KVStore view to operate on, and a Tx carrying the message. The host is
expected to run every operation on a cache wrap and commit it only on
success, so a failed operation never leaves partial state behind.
*/
package payinbox
