// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the store
// (defined in internal/store) to fulfill application features.
//
// The service layer owns the in-memory topic collection: components receive
// read access to snapshots and mutations produce new values which are
// committed here, then written through to the store. It depends on domain
// entities and repository interfaces, never on specific infrastructure
// implementations.
package service
