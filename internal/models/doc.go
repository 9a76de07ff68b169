// Package models defines the core domain models for the agency admin
// dashboard.
//
// # Models
//
//   - Project: a client engagement with value, status, and deadline
//   - Transaction: an income or expense ledger entry, optionally linked to a
//     project and optionally split across team members
//   - RevenueSplit: one member's share of an Income transaction
//   - TeamMember: a person revenue can be split with
//   - CloudConfig / Snapshot / SyncStatus: cloud synchronization state
//
// # Design Principles
//
//  1. **Single-admin simplicity**: collections are small, owned by one
//     controller, and serialized whole
//  2. **References by ID string**: no pointers between entities, and
//     dangling references are tolerated rather than cascaded (a transaction
//     outlives the project it points at)
//  3. **Integer money**: all amounts are int64 in the smallest currency
//     unit; no floats in the data model
package models
