// Package kernel provides core domain primitives shared by the order brokering model.
//
// The package includes:
//   - UserID: the opaque numeric identity the messaging platform assigns to a person
//   - MessageRef: the location of a rendered notification, used to edit or delete it later
//   - UUID: a value object for generated identifiers such as lifecycle event ids
//
// The primitives are immutable and safe for concurrent use.
package kernel
