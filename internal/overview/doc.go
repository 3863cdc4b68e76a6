// Package overview aggregates per-backend summaries into one dashboard payload.
//
// Each backend gets exactly one slot in the result. A backend failure never
// aborts the aggregate; the failing slot is downgraded to an error marker.
package overview
