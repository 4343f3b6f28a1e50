// Package domain defines the records exchanged with the RMS persistence layer.
//
// The package contains no database code. Every entity has a full record,
// returned by single-entity lookups, and a summary record, returned by list
// operations.
//
// # Entities
//
// User and Restaurant are addressed by their natural keys (username and
// restaurant name). Staffing links a user to a restaurant with a Position.
//
// Vendor, Item and Stock are addressed by surrogate keys. Outside the
// database these keys travel as tagged identifiers (ID) rendered with an
// entity prefix: "v-12", "it-7", "st-3". A key carrying the wrong prefix is
// rejected by ParseID, so a vendor key can never be used to look up stock.
//
// # Errors
//
// Error carries an ErrorKind for the two fatal conditions of the layer:
// KindConnection and KindInvalidIdentifier. Expected outcomes such as a
// missing row or a duplicate natural key are reported as values by the
// repositories, not as errors.
package domain
