// Package services provides domain services that implement business logic
// spanning multiple aggregates in the OrderFlow system.
//
// The package includes:
//   - TransitionClassifier: weighs status transitions as routine or
//     significant, pinning down the template invariants a drafting decision
//     must satisfy
package services
