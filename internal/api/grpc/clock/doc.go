// Package clock implements the gRPC transport for the alarm clock.
//
// The service is described by hand with protobuf well-known types (Empty,
// StringValue, Struct), so no generated code is needed. The package exposes
// the server adapter over a business-service interface, the state conversion
// used by both sides, and the actor metadata helpers for clients.
package clock
