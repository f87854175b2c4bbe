package models

// Sport defines a sport kind based on the 'sports' table
type Sport struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"Badminton"`
}

// SportLocation defines a venue based on the 'sport_locations' table
type SportLocation struct {
	ID      int64  `json:"id" db:"id" example:"1"`
	Name    string `json:"name" db:"name" example:"Main Gym"`
	Address string `json:"address,omitempty" db:"address" example:"Hallenweg 3"`
}

// SportEventType defines an event category based on the 'sport_event_types' table
type SportEventType struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"Training"`
}

// SportClub defines a club based on the 'sport_clubs' table
type SportClub struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"TSV Musterstadt"`
}
