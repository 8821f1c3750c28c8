package sources

const (
	AssetDir     = "assets"
	CityImageDir = AssetDir + "/city_images"

	// GlobeTexture is an equirectangular world map.
	GlobeTexture = AssetDir + "/world_map.jpg"
)
