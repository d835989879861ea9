// Package key models the composite identifiers used by indexed formsets.
//
// A control inside repeated block i of group "measurements" is named
// "measurements-i-<field>" and carries the id "id_measurements-i-<field>".
// Only the first two dash separated segments are structural; the field name
// keeps any further dashes verbatim. Parse and String round-trip for every
// well-formed name, which is why non-canonical indexes ("01", "+1") are
// rejected instead of normalised.
package key
