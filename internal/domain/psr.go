package domain

// psrNames maps ENTSO-E PSR type codes to human-readable source names,
// as rendered by the dashboard generation-mix charts.
var psrNames = map[string]string{
	"B01": "Biomass",
	"B02": "Lignite",
	"B03": "Coal-derived Gas",
	"B04": "Fossil Gas",
	"B05": "Hard Coal",
	"B06": "Fossil Oil",
	"B07": "Peat",
	"B08": "Oil Shale",
	"B09": "Geothermal",
	"B10": "Hydro Pumped Storage",
	"B11": "Hydro Run-of-river",
	"B12": "Hydro Water Reservoir",
	"B13": "Marine (wave, tidal)",
	"B14": "Nuclear",
	"B15": "Other Renewable",
	"B16": "Solar",
	"B17": "Waste",
	"B18": "Wind Offshore",
	"B19": "Wind Onshore",
	"B20": "Other",
	"B25": "Battery storage",
	"B26": "Compressed air energy storage",
	"B27": "Power-to-Gas",

	PSRTypeTotalLoad: "Total Load",
}

// PSRName resolves a PSR type code to its display name.
// Unknown codes are returned unchanged.
func PSRName(code string) string {
	if name, ok := psrNames[code]; ok {
		return name
	}
	return code
}
