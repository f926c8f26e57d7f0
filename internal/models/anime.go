package models

// Anime is a catalog item. Genre is a comma-joined list, matching the
// upstream catalog format.
type Anime struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Synopsis string `json:"synopsis"`
	Genre    string `json:"genre"`
	Year     int    `json:"year,omitempty"`
	Episodes int    `json:"episodes,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}
