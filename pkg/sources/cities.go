// Package sources holds the compiled-in city table the globe is populated from.
package sources

import (
	"strings"

	"github.com/biter777/countries"
)

// City is one entry of the marker table.
type City struct {
	Name    string
	Lat     float64
	Lon     float64
	Country string // ISO 3166-1 alpha-2
	Images  []string
}

// Cities is the default marker table, in display order.
var Cities = []City{
	{Name: "New York", Lat: 40.7128, Lon: -74.0060, Country: "US", Images: images("ny")},
	{Name: "Los Angeles", Lat: 34.0522, Lon: -118.2437, Country: "US", Images: images("la")},
	{Name: "San Diego", Lat: 32.7157, Lon: -117.1611, Country: "US", Images: images("sd")},
	{Name: "Miami", Lat: 25.7617, Lon: -80.1918, Country: "US", Images: images("miami")},
	{Name: "Washington DC", Lat: 38.9072, Lon: -77.0369, Country: "US", Images: images("dc")},
	{Name: "Toronto", Lat: 43.651070, Lon: -79.347015, Country: "CA", Images: images("toronto")},
	{Name: "Nashville", Lat: 36.1627, Lon: -86.7816, Country: "US", Images: images("nash")},
	{Name: "Grand Rapids", Lat: 42.9634, Lon: -85.6681, Country: "US", Images: images("gr")},
	{Name: "Osaka", Lat: 34.6937, Lon: 135.5023, Country: "JP", Images: images("osaka")},
	{Name: "Seoul", Lat: 37.5665, Lon: 126.9780, Country: "KR", Images: images("seoul")},
	{Name: "Semarang", Lat: -6.9667, Lon: 110.4167, Country: "ID", Images: images("semarang")},
	{Name: "Bali", Lat: -8.3405, Lon: 115.0920, Country: "ID", Images: images("bali")},
}

func images(stem string) []string {
	return []string{
		CityImageDir + "/" + stem + "1.jpg",
		CityImageDir + "/" + stem + "2.jpg",
	}
}

// CountryName turns an alpha-2 code into a short display name, falling back to the
// code itself when it is unknown.
func CountryName(cc string) string {
	if cc == "" {
		return ""
	}
	name := countries.ByName(cc).String()
	if name == "Unknown" {
		return cc
	}
	if idx := strings.Index(name, " ("); idx != -1 {
		name = name[:idx]
	}
	return name
}
