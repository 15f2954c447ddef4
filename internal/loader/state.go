package loader

import (
	"github.com/rshade/holocron/internal/swapi"
)

// ViewState is the aggregated character page: the primary record, its resolved
// related records, and whether a fetch cycle is still running.
type ViewState struct {
	CycleID   string           `json:"cycle_id"`
	ID        string           `json:"id"`
	Character *swapi.Character `json:"character"`
	ImageURL  string           `json:"image_url"`
	Films     []swapi.Film     `json:"films"`
	Starships []swapi.Starship `json:"starships"`
	Vehicles  []swapi.Vehicle  `json:"vehicles"`
	Loading   bool             `json:"loading"`
	Fetched   int              `json:"fetched"`
	Total     int              `json:"total"`

	// Err is the failure that ended the cycle, if any. Error mirrors it for JSON.
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// NewViewState returns an empty state for id with non-nil sequences.
func NewViewState(id string) *ViewState {
	return &ViewState{
		ID:        id,
		Films:     []swapi.Film{},
		Starships: []swapi.Starship{},
		Vehicles:  []swapi.Vehicle{},
	}
}

// HasCharacter reports whether the primary record was resolved.
func (s ViewState) HasCharacter() bool {
	return s.Character != nil
}

// Failed reports whether the cycle ended with an error.
func (s ViewState) Failed() bool {
	return s.Err != nil
}

func (s *ViewState) fail(err error) {
	s.Err = err
	s.Error = err.Error()
}
