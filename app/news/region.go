package news

import (
	"strings"
)

// RegionGlobal is the sentinel returned when no region can be resolved.
const RegionGlobal = "global"

// RegionCountries maps each macro-region to its ISO 3166-1 alpha-2
// country codes.
var RegionCountries = map[string][]string{
	"africa":   {"KE", "NG", "ZA", "EG", "GH", "TZ", "UG", "ET", "MA", "DZ", "SD", "AO", "CI", "CM", "SN", "ZW", "MZ", "RW", "SO", "BF", "NE", "ML", "ZM", "MW", "TG", "LS", "GM", "BI", "SL", "LR", "DJ", "SZ", "MR", "GA", "GQ", "BW", "CV", "ST", "SC", "KM"},
	"europe":   {"GB", "FR", "DE", "IT", "ES", "RU", "UA", "PL", "RO", "NL", "BE", "GR", "CZ", "PT", "SE", "HU", "AT", "CH", "BG", "DK", "FI", "SK", "NO", "IE", "HR", "LT", "SI", "LV", "EE", "LU", "CY", "MT", "IS", "LI", "MC", "AD", "SM", "VA"},
	"asia":     {"CN", "IN", "ID", "PK", "BD", "JP", "PH", "VN", "TR", "IR", "TH", "MM", "KR", "IQ", "AF", "SA", "UZ", "MY", "YE", "NP", "KZ", "SY", "KH", "JO", "AE", "AZ", "TJ", "IL", "HK", "LA", "KG", "LB", "TM", "SG", "OM", "KW", "GE", "MN", "AM", "QA", "BH", "MV", "BT", "MO"},
	"americas": {"US", "CA", "BR", "MX", "AR", "CO", "CL", "PE", "VE", "EC", "GT", "CU", "BO", "DO", "HN", "PY", "SV", "NI", "CR", "PA", "UY", "JM", "TT", "BS", "BZ", "HT", "GY", "SR", "KN", "LC", "VC", "AG", "DM", "GD", "BB", "SX"},
	"oceania":  {"AU", "NZ", "PG", "FJ", "SB", "VU", "NC", "WS", "TO", "TV", "FM", "MH", "PW", "KI", "NR"},
}

// RegionKeywords is the keyword fallback used when neither an explicit
// region nor a mappable country code is present.
var RegionKeywords = map[string][]string{
	"africa":   {"africa", "kenya", "nigeria", "south africa", "ethiopia", "egypt", "ghana", "tanzania", "uganda", "morocco", "algeria"},
	"europe":   {"europe", "eu ", "uk ", "germany", "france", "spain", "italy", "russia", "ukraine", "poland", "netherlands", "sweden"},
	"asia":     {"asia", "china", "india", "japan", "korea", "indonesia", "pakistan", "bangladesh", "vietnam", "turkey", "iran", "thailand"},
	"americas": {"america", "usa", "us ", "canada", "brazil", "mexico", "argentina", "colombia", "chile", "peru"},
	"oceania":  {"australia", "new zealand", "pacific", "oceania", "papua new guinea", "fiji", "solomon islands"},
}

// regionOrder fixes the scan order for the keyword fallback so
// classification is deterministic.
var regionOrder = []string{"africa", "europe", "asia", "americas", "oceania"}

var countryToRegion = func() map[string]string {
	m := make(map[string]string)
	for region, codes := range RegionCountries {
		for _, code := range codes {
			m[code] = region
		}
	}
	return m
}()

// Regions returns the macro-region names in scan order.
func Regions() []string {
	regions := make([]string, len(regionOrder))
	copy(regions, regionOrder)
	return regions
}

// IsKnownRegion reports whether name is a macro-region or the global
// sentinel.
func IsKnownRegion(name string) bool {
	if name == RegionGlobal {
		return true
	}
	_, ok := RegionCountries[name]
	return ok
}

// RegionForCountry maps an ISO alpha-2 country code to its macro-region.
func RegionForCountry(code string) (string, bool) {
	region, ok := countryToRegion[strings.ToUpper(code)]
	return region, ok
}

// RegionInput carries the fields the classifier inspects. VenueCountry
// is only set for event records.
type RegionInput struct {
	Region       string
	Country      string
	VenueCountry string
	Title        string
	Description  string
	Content      string
}

// ResolveRegion classifies an item into a macro-region. Priority:
// explicit region, country code, venue country code, keyword scan over
// the item text, then the global sentinel. An explicit country always
// wins over the keyword fallback.
func ResolveRegion(in RegionInput) string {
	if in.Region != "" {
		return in.Region
	}

	if in.Country != "" {
		if region, ok := RegionForCountry(in.Country); ok {
			return region
		}
	}

	if in.VenueCountry != "" {
		if region, ok := RegionForCountry(in.VenueCountry); ok {
			return region
		}
	}

	text := strings.ToLower(in.Title + " " + in.Description + " " + in.Content)
	for _, region := range regionOrder {
		for _, keyword := range RegionKeywords[region] {
			if strings.Contains(text, keyword) {
				return region
			}
		}
	}

	return RegionGlobal
}
