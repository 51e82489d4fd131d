package omdb

// Movie is the OMDb response for a resolved title. Every field arrives as a
// string; absent values carry the literal sentinel "N/A", which downstream
// cleaning maps to NULL. Ratings is the only nested structure.
type Movie struct {
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Rated      string   `json:"Rated"`
	Released   string   `json:"Released"`
	Runtime    string   `json:"Runtime"`
	Genre      string   `json:"Genre"`
	Director   string   `json:"Director"`
	Writer     string   `json:"Writer"`
	Actors     string   `json:"Actors"`
	Plot       string   `json:"Plot"`
	Language   string   `json:"Language"`
	Country    string   `json:"Country"`
	Awards     string   `json:"Awards"`
	Poster     string   `json:"Poster"`
	Ratings    []Rating `json:"Ratings"`
	Metascore  string   `json:"Metascore"`
	ImdbRating string   `json:"imdbRating"`
	ImdbVotes  string   `json:"imdbVotes"`
	ImdbID     string   `json:"imdbID"`
	Type       string   `json:"Type"`
	BoxOffice  string   `json:"BoxOffice"`
	Production string   `json:"Production"`
	Website    string   `json:"Website"`

	// Response is OMDb's boolean-as-string success flag; Error carries the
	// reason when it is "False".
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Rating is one entry of the Ratings list, e.g.
// {"Source": "Rotten Tomatoes", "Value": "93%"}.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}
