package domain

// Audience describes who a campaign should reach. It is stored as JSON
// alongside the campaign and forwarded verbatim to the ad platform.
type Audience struct {
	Languages  []string `json:"languages"`
	Geos       []string `json:"geos"`
	AgeMin     int      `json:"age_min"`
	AgeMax     int      `json:"age_max"`
	Interests  []string `json:"interests"`
	Placements []string `json:"placements"`
}

// Brief is the creative input for a campaign. The content and image
// producers construct copy and visuals from it. The HTTP layer builds
// this struct from request data and never touches it afterwards.
type Brief struct {
	ProductName        string   `json:"product_name"`
	ProductDescription string   `json:"product_description"`
	SellingPoints      []string `json:"selling_points"`
	SpecialOffer       string   `json:"special_offer"`
	BrandTone          string   `json:"brand_tone"`
	LandingURL         string   `json:"landing_url"`
	Audience           Audience `json:"audience"`
}
