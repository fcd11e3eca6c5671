package rebrick

// page is the envelope Rebrickable wraps every list response in.
type page[T any] struct {
	Count    int    `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T    `json:"results"`
}

// SetResult is one set as returned by /lego/sets/.
type SetResult struct {
	SetNum   string `json:"set_num"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	ThemeID  int    `json:"theme_id"`
	NumParts int    `json:"num_parts"`
	ImageURL string `json:"set_img_url"`
}

// ThemeResult is one theme as returned by /lego/themes/.
type ThemeResult struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID *int   `json:"parent_id"`
}
