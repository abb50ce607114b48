// Package middleware provides decorators for ports.CaseStore.
package middleware
