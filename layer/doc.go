// SPDX-License-Identifier: MIT

// Package layer defines the node kinds of a genome graph and their rules.
//
// A Spec is a closed sum type over eight kinds:
//
//	Input   – fixed output shape, never accepts a predecessor
//	Output  – fixed input shape, passes it through
//	Dense   – replaces the last dimension with Units
//	Conv2D  – [H,W,C] → [H',W',Filters]
//	Pooling – [H,W,C] → [H',W',C]
//	Flatten – [H,W,C] → [H·W·C]
//	Add     – element-wise merge, all inputs share one shape
//	Concat  – channel merge, inputs share H and W
//
// Every per-kind behavior is a type switch over Spec, so adding a kind is a
// compile-time checklist:
//
//	MergeInputs(spec, preds)          – input shape from predecessor outputs
//	OutputShape(spec, in)             – output shape from input shape
//	Accepts(spec, port, candidate)    – live compatibility of an incoming edge
//	AcceptsDetached(spec, in, cand)   – shape rule without the predecessor count
//	Clone(spec)                       – deep copy
//	NewRecord(spec) / FromRecord(rec) – the {"node":…, "params":…} wire record
//
// Parameters are validated with go-playground/validator struct tags; an
// invalid parameter set yields ErrInvalidParams.
package layer
