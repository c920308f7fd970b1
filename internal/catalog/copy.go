package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed copy.toml
var copyTOML []byte

// TypeCopy holds the user-facing strings for one media type.
type TypeCopy struct {
	Label          string `toml:"label"`
	Placeholder    string `toml:"placeholder"`
	Attribution    string `toml:"attribution"`
	SkeletonTitle  string `toml:"skeleton_title"`
	SkeletonCredit string `toml:"skeleton_credit"`
}

// SkeletonCopy fills the year and rating slots of loading cards.
type SkeletonCopy struct {
	Year   string `toml:"year"`
	Rating string `toml:"rating"`
}

// Copy is the full set of UI strings.
type Copy struct {
	Book     TypeCopy     `toml:"book"`
	Movie    TypeCopy     `toml:"movie"`
	Skeleton SkeletonCopy `toml:"skeleton"`
}

// LoadCopy parses the embedded copy and, when overridePath is non-empty,
// merges the non-empty fields of that file on top.
func LoadCopy(overridePath string) (*Copy, error) {
	var c Copy
	if err := toml.Unmarshal(copyTOML, &c); err != nil {
		return nil, fmt.Errorf("parsing copy.toml: %w", err)
	}

	if overridePath == "" {
		return &c, nil
	}

	data, err := os.ReadFile(overridePath)
	if err != nil {
		return nil, fmt.Errorf("reading copy overrides: %w", err)
	}
	var user Copy
	if err := toml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parsing copy overrides %s: %w", overridePath, err)
	}
	c.Book.merge(user.Book)
	c.Movie.merge(user.Movie)
	if user.Skeleton.Year != "" {
		c.Skeleton.Year = user.Skeleton.Year
	}
	if user.Skeleton.Rating != "" {
		c.Skeleton.Rating = user.Skeleton.Rating
	}
	return &c, nil
}

// DefaultCopy returns the embedded copy. The embedded file is part of the
// binary, so a parse failure is a build defect.
func DefaultCopy() *Copy {
	c, err := LoadCopy("")
	if err != nil {
		panic(err)
	}
	return c
}

// For returns the copy of media type m.
func (c *Copy) For(m Mode) TypeCopy {
	if m == Movie {
		return c.Movie
	}
	return c.Book
}

func (t *TypeCopy) merge(o TypeCopy) {
	if o.Label != "" {
		t.Label = o.Label
	}
	if o.Placeholder != "" {
		t.Placeholder = o.Placeholder
	}
	if o.Attribution != "" {
		t.Attribution = o.Attribution
	}
	if o.SkeletonTitle != "" {
		t.SkeletonTitle = o.SkeletonTitle
	}
	if o.SkeletonCredit != "" {
		t.SkeletonCredit = o.SkeletonCredit
	}
}
