// Package ports declares the interfaces the engine depends on but does not
// implement: the persistence sink for session drafts and the identity
// provider that supplies respondent handles. Adapters live under
// internal/adapters.
package ports
