package scoring

// cityRegions maps normalized city names onto the state-level region used by
// the location scorer. Cities absent from the table are their own region.
var cityRegions = map[string]string{
	"mumbai":    "maharashtra",
	"pune":      "maharashtra",
	"bangalore": "karnataka",
	"hyderabad": "telangana",
	"chennai":   "tamil nadu",
	"delhi":     "delhi",
	"gurgaon":   "delhi",
	"noida":     "delhi",
	"goa":       "goa",
}

// majorMetros are cities assumed to have good travel connectivity between
// each other.
var majorMetros = map[string]struct{}{
	"mumbai":    {},
	"delhi":     {},
	"bangalore": {},
	"hyderabad": {},
	"chennai":   {},
	"pune":      {},
}

func regionOf(city string) string {
	if region, ok := cityRegions[city]; ok {
		return region
	}
	return city
}

func isMajorMetro(city string) bool {
	_, ok := majorMetros[city]
	return ok
}
