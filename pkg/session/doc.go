/*
Package session tracks the cases open in a process.

A Registry replaces process-wide state: whoever opens cases holds a *Registry and passes it along, and a
second attempt to open the same source fails with domain.ErrCaseAlreadyOpen.
*/
package session
