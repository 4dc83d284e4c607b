package output

// DefaultAssumptions lists the data and rule assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Poverty guidelines: $14,580 plus $5,140 per additional person, with separate Alaska and Hawaii tables",
	"Household size counts the applicant plus every dependent",
	"Children over their Medicaid age-bracket limit are checked against the separate CHIP limit",
	"Plan cost sharing is shown as published for in-network tier 1; no premiums are included",
	"Households that do not qualify for assistance see only covered benefits with cost sharing",
}
