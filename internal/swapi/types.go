package swapi

// Character is the primary record served at /people/{id}/.
type Character struct {
	Name      string   `json:"name"`
	Height    string   `json:"height"`
	Mass      string   `json:"mass"`
	HairColor string   `json:"hair_color"`
	SkinColor string   `json:"skin_color"`
	EyeColor  string   `json:"eye_color"`
	BirthYear string   `json:"birth_year"`
	Gender    string   `json:"gender"`
	Homeworld string   `json:"homeworld,omitempty"`
	Films     []string `json:"films"`
	Species   []string `json:"species,omitempty"`
	Starships []string `json:"starships"`
	Vehicles  []string `json:"vehicles"`
	URL       string   `json:"url"`
}

// FilmURLs returns the film references, never nil.
func (c *Character) FilmURLs() []string {
	return nonNil(c, func(c *Character) []string { return c.Films })
}

// StarshipURLs returns the starship references, never nil.
func (c *Character) StarshipURLs() []string {
	return nonNil(c, func(c *Character) []string { return c.Starships })
}

// VehicleURLs returns the vehicle references, never nil.
func (c *Character) VehicleURLs() []string {
	return nonNil(c, func(c *Character) []string { return c.Vehicles })
}

// RelatedCount is the number of linked films, starships and vehicles.
func (c *Character) RelatedCount() int {
	return len(c.FilmURLs()) + len(c.StarshipURLs()) + len(c.VehicleURLs())
}

func nonNil(c *Character, get func(*Character) []string) []string {
	if c == nil {
		return []string{}
	}
	if refs := get(c); refs != nil {
		return refs
	}
	return []string{}
}

// Film is a related record served at /films/{id}/.
type Film struct {
	Title        string `json:"title"`
	EpisodeID    int    `json:"episode_id"`
	OpeningCrawl string `json:"opening_crawl,omitempty"`
	Director     string `json:"director"`
	Producer     string `json:"producer"`
	ReleaseDate  string `json:"release_date"`
	URL          string `json:"url"`
}

// Craft holds the display attributes starships and vehicles share.
type Craft struct {
	Name                 string `json:"name"`
	Model                string `json:"model"`
	Manufacturer         string `json:"manufacturer"`
	CostInCredits        string `json:"cost_in_credits"`
	Length               string `json:"length,omitempty"`
	MaxAtmospheringSpeed string `json:"max_atmosphering_speed,omitempty"`
	Crew                 string `json:"crew,omitempty"`
	Passengers           string `json:"passengers,omitempty"`
	CargoCapacity        string `json:"cargo_capacity,omitempty"`
	Consumables          string `json:"consumables,omitempty"`
	URL                  string `json:"url"`
}

// Starship is a related record served at /starships/{id}/.
type Starship struct {
	Craft

	HyperdriveRating string `json:"hyperdrive_rating,omitempty"`
	MGLT             string `json:"MGLT,omitempty"`
	StarshipClass    string `json:"starship_class,omitempty"`
}

// Vehicle is a related record served at /vehicles/{id}/.
type Vehicle struct {
	Craft

	VehicleClass string `json:"vehicle_class,omitempty"`
}
