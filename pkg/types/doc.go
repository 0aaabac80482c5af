// Package types defines the record entities, command envelope, reply shapes,
// and standard error types shared by the golibman store workers, the lending
// engine, and the controller.
package types
