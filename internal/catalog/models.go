package catalog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Mode is the widget's current subject. The widget always searches and
// recommends the complementary type: in Book mode the user looks up a movie
// and gets books back.
type Mode int

const (
	Book Mode = iota
	Movie
)

func (m Mode) String() string {
	switch m {
	case Book:
		return "book"
	case Movie:
		return "movie"
	default:
		return "unknown"
	}
}

// ParseMode parses "book" or "movie" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "book", "books":
		return Book, nil
	case "movie", "movies":
		return Movie, nil
	default:
		return Book, fmt.Errorf("unknown mode %q (want book or movie)", s)
	}
}

// Complement returns the opposite media type.
func (m Mode) Complement() Mode {
	if m == Book {
		return Movie
	}
	return Book
}

// RecommendPath is the endpoint path recommendations are fetched from
// while m is active.
func (m Mode) RecommendPath() string {
	if m == Book {
		return "/recommend_books"
	}
	return "/recommend_movies"
}

// Filters are the two option toggles sent with every request.
type Filters struct {
	IncludeAdult       bool `json:"include_adult"`
	IncludeAdaptations bool `json:"include_adaptations"`
}

// Item is one search or recommendation result. Authors is only present for
// book-type items; a nil slice means the field was absent or null.
type Item struct {
	ID           Text     `json:"id"`
	Title        string   `json:"title"`
	PreviewImage string   `json:"previewImage"`
	Authors      []string `json:"authors,omitempty"`
	Year         Text     `json:"year"`
	Rating       float64  `json:"rating"`
	Overview     string   `json:"overview,omitempty"`
}

// HasAuthors reports whether the authors field was present, even if empty.
func (i Item) HasAuthors() bool {
	return i.Authors != nil
}

// Text is a JSON scalar that may arrive as either a string or a number.
// Google Books ids are strings, TMDB ids are numbers; years show up both ways.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("text field: unsupported value %s", data)
	}
	*t = Text(FormatNumber(f))
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t Text) String() string {
	return string(t)
}

// FormatNumber prints f in its shortest round-trip form: 8 -> "8",
// 3.75 -> "3.75".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// DecodeItems decodes a JSON array of items. A JSON null decodes to an
// empty result.
func DecodeItems(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}
	return items, nil
}
