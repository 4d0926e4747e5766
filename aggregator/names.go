package aggregator

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"

	"github.com/bitmark-inc/ncp-map/consts"
)

// RegionAliases - how city names of one region are spelled on its map
type RegionAliases struct {
	Suffix  string            `yaml:"suffix"`
	Aliases map[string]string `yaml:"aliases"`
}

// Normalizer turns the short city names of the case API into the full
// administrative names used by region maps
type Normalizer struct {
	defaultSuffix string
	regions       map[string]RegionAliases
}

// NewNormalizer - normalizer seeded with the built in alias tables
func NewNormalizer() *Normalizer {
	n := &Normalizer{
		defaultSuffix: consts.DefaultCitySuffix,
		regions:       make(map[string]RegionAliases),
	}

	for region := range consts.RegionCityAliases {
		for alias, full := range consts.CityAliases(region) {
			n.Add(region, alias, full)
		}
	}
	return n
}

// LoadNormalizer reads extra alias tables from a yaml file shaped as
//
//	湖北:
//	  suffix: 市
//	  aliases:
//	    恩施州: 恩施土家族苗族自治州
//
// entries of the file take precedence over the built in ones
func LoadNormalizer(file string) (*Normalizer, error) {
	n := NewNormalizer()
	if file == "" {
		return n, nil
	}

	data, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var tables map[string]RegionAliases
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, err
	}

	for region, t := range tables {
		if t.Suffix != "" {
			r := n.regions[region]
			r.Suffix = t.Suffix
			n.regions[region] = r
		}
		for alias, full := range t.Aliases {
			n.Add(region, alias, full)
		}
	}
	return n, nil
}

// Add registers the full name of an alias in a region
func (n *Normalizer) Add(region, alias, full string) {
	r := n.regions[region]
	if r.Aliases == nil {
		r.Aliases = make(map[string]string)
	}
	r.Aliases[alias] = full
	n.regions[region] = r
}

// Normalize maps an alias to its full name, any other name gets the city
// suffix of the region appended
func (n *Normalizer) Normalize(rawCityName, region string) string {
	r := n.regions[region]
	if full, ok := r.Aliases[rawCityName]; ok {
		return full
	}

	suffix := r.Suffix
	if suffix == "" {
		suffix = n.defaultSuffix
	}
	return rawCityName + suffix
}

// NormalizeAll normalizes the names of a region count list, keeping values
// and order
func (n *Normalizer) NormalizeAll(values []NameValue, region string) []NameValue {
	result := make([]NameValue, 0, len(values))
	for _, v := range values {
		result = append(result, NameValue{Name: n.Normalize(v.Name, region), Value: v.Value})
	}
	return result
}

var defaultNormalizer = NewNormalizer()

// NormalizeRegionCityName normalizes with the built in alias tables
func NormalizeRegionCityName(rawCityName, region string) string {
	return defaultNormalizer.Normalize(rawCityName, region)
}
