/*
Package ports defines the driven ports of the case editor.

# Key Interfaces

  - CaseStore: persists serialized case documents by name (memory and filesystem adapters).

RunCaseStoreContract is a shared test suite every CaseStore implementation must pass.
*/
package ports
