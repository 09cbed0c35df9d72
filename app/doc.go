/*
Package app assembles the pieces a host needs to run the ledger: a
message router, decorator chains and genesis initialization.
*/
package app
