// Package schema provides the validation layer used by every typed case accessor.
//
// Guards are pure functions that either pass a value through or return a *ValidationError carrying a
// machine-readable Kind:
//
//	if err := schema.InSet("choice", v, "on", "off"); err != nil { ... }       // KindNotInSet
//	norm, err := schema.ParseNumber("norm", raw)                                 // KindNotANumber
//	err = schema.InRange("emissivity", e, 0, 1, true)                           // KindOutOfRange
//	err = schema.Positive("pressure", p)                                         // KindWrongSign
//	err = schema.SumTo("ratio", ratios, 100, 1e-6)                              // KindOutOfRange
//
// Every ValidationError matches schema.ErrValidation under errors.Is.
//
// The package also keeps a small type system (String, Float, Int, Bool, Slice, Enum, Between, Above,
// AtLeastZero, Custom). A Schema maps field names to types and Validate reports every failure at once
// through an *AggregateError; document-wide checks use it to lint stored scalars.
//
// Guards never mutate and the package has no dependencies beyond the standard library.
package schema
