package testcases

// All contains all test cases, grouped by category.
// The category name is used as a prefix in exported file names.
var All = map[string][]TestCase{
	"identity": identityCases,
	"shift":    shiftCases,
	"scale":    scaleCases,
	"rotate":   rotateCases,
	"shear":    shearCases,
}
