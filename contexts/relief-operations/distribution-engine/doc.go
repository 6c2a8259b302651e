// Package distributionengine implements the aid distribution transaction
// engine for the Almoner monolith.
//
// The module owns the inventory line and distribution record tables and
// exposes HTTP command/query handlers plus the worker entrypoint for outbox
// relay. Inventory debits are serialized per (center, package) line through
// the locked ledger; every successful distribution commits its stock
// decrement and audit record as one atomic unit.
package distributionengine
