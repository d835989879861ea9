package render

// Constraint patterns shared by the measurement fields.
const (
	IntPattern = `[0-9]{1,6}`
	NumPattern = `[0-9]{1,4}([.,][0-9]{1,3})?`
)

// FieldSpec describes one control repeated in every block.
type FieldSpec struct {
	Name     string
	Label    string
	Type     string
	Widget   string
	Pattern  string
	Class    string
	Required bool
}

// MeasurementFields is the measurement report row: a pallet number that
// must be unique per report, tolerance triples for the inner diameter,
// outer diameter and length, and the optional lab results.
var MeasurementFields = []FieldSpec{
	{Name: "pallet_number", Label: "Pallet number", Pattern: IntPattern, Required: true, Class: "measurements-pallet_number"},

	{Name: "internal_diameter_tolerance_top", Label: "Inner diameter, upper tolerance", Pattern: NumPattern, Required: true},
	{Name: "internal_diameter_target", Label: "Inner diameter", Pattern: NumPattern, Required: true},
	{Name: "internal_diameter_tolerance_bottom", Label: "Inner diameter, lower tolerance", Pattern: NumPattern, Required: true},

	{Name: "external_diameter_tolerance_top", Label: "Outer diameter, upper tolerance", Pattern: NumPattern, Required: true},
	{Name: "external_diameter_target", Label: "Outer diameter", Pattern: NumPattern, Required: true},
	{Name: "external_diameter_tolerance_bottom", Label: "Outer diameter, lower tolerance", Pattern: NumPattern, Required: true},

	{Name: "length_tolerance_top", Label: "Length, upper tolerance", Pattern: NumPattern, Required: true},
	{Name: "length_target", Label: "Length", Pattern: NumPattern, Required: true},
	{Name: "length_tolerance_bottom", Label: "Length, lower tolerance", Pattern: NumPattern, Required: true},

	{Name: "flat_crush_resistance_target", Label: "Flat crush resistance", Pattern: IntPattern},
	{Name: "moisture_content_target", Label: "Moisture content", Pattern: IntPattern},
	{Name: "weight", Label: "Weight", Pattern: IntPattern},

	{Name: "remarks", Label: "Remarks", Widget: "textarea"},
}
