package consts

const (
	DefaultCountry          = "中国"
	DefaultDesignatedRegion = "湖北"
	DefaultCitySuffix       = "市"
	DefaultTimezone         = "GMT+8"

	DefaultSnapshotURL = "https://view.inews.qq.com/g2/getOnsInfo?name=disease_h5"
	DefaultAMapURL     = "https://restapi.amap.com/v3/geocode/geo"

	DefaultPositionFile = "position.json"
	DefaultPageFile     = "NCP.html"
)

// RegionCityAliases maps a designated region to the short city names used by
// the case API and the full administrative names expected by region maps.
var RegionCityAliases map[string]map[string]string

func init() {
	RegionCityAliases = make(map[string]map[string]string)

	RegionCityAliases["湖北"] = map[string]string{
		"恩施州": "恩施土家族苗族自治州",
		"神农架": "神农架林区",
	}
}

// CityAliases returns the alias table of a region, or nil for unknown regions
func CityAliases(region string) map[string]string {
	return RegionCityAliases[region]
}
