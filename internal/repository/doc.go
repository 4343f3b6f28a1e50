// Package repository defines the data access interfaces for the RMS entities.
//
// The interfaces describe the fixed query shapes of the persistence layer:
// get, list, append, modify and delete per entity, plus staffing
// assignments. The SQLite implementation lives in the sqlite subpackage.
//
// # Result conventions
//
// Expected business outcomes are values, never errors:
//
//   - Get returns a nil record when no row matches.
//   - Append returns false when the natural key is already taken.
//   - Modify and Delete return false when the key does not exist.
//
// Errors are reserved for malformed identifiers (domain.ErrInvalidIdentifier),
// engine failures (domain.ErrConnection) and constraint violations raised
// by SQLite, such as a foreign key pointing at a missing row.
package repository
