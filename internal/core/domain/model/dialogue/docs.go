// Package dialogue holds the per-requester conversation that collects an order draft.
//
// A Session walks a fixed, linear sequence of steps:
//
//	ChoosingService
//	  -> ChoosingFromCategory -> ChoosingFromPlace | TypingFromPlace
//	  -> ChoosingToCategory   -> ChoosingToPlace   | TypingToPlace
//	  -> ConfirmingOrder
//
// Mahallah categories branch into a closed list of places taken from a Catalog;
// the campus categories branch into free text. Every step method checks the
// current state first and returns ErrUnexpectedInput when the input belongs to a
// different step, so a stale button press never corrupts the draft.
//
// Sessions carry no identity beyond the requester id and are never persisted as
// orders: only Draft crosses into the order lifecycle.
package dialogue
