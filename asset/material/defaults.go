package material

// The placeholder substituted for missing materials.
const (
	PlaceholderName = "MATERIAL_PLACEHOLDER"

	// Procedural texture applied to the placeholder reflectance.
	PlaceholderChecker         = "Checker"
	PlaceholderCheckerElements = 32
)

var (
	DefaultDisplacementSubdivision = 5
)
