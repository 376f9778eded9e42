package scraper

type DistinctionName = string

const (
	BibGourmand = DistinctionName("Bib Gourmand")
	OneStar     = DistinctionName("One Star")
	TwoStars    = DistinctionName("Two Stars")
	ThreeStars  = DistinctionName("Three Stars")
	GreenStar   = DistinctionName("Green Star")
)

// Order matters: the award text is matched by substring, and the
// sustainability star must not shadow a plate distinction.
var distinctionNames = []DistinctionName{
	BibGourmand,
	ThreeStars,
	TwoStars,
	OneStar,
	GreenStar,
}

type Restaurant struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	CuisineType string `json:"cuisineType"`
	PriceRange  string `json:"priceRange"`
	Distinction string `json:"distinction"`
	SourceURL   string `json:"sourceUrl"`
}
