package domain

import "time"

const (
	DefaultOGType      = "article"
	DefaultTwitterCard = "summary_large_image"
	DefaultCurrency    = "EUR"
)

// HeroImage is only present when the record carries at least one hero field.
type HeroImage struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

type SEO struct {
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	OGImage         string `json:"ogImage,omitempty"`
	OGType          string `json:"ogType"`
	TwitterCard     string `json:"twitterCard"`
}

// BlogPost is the normalized data of a blog entry.
type BlogPost struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Category     string     `json:"category"`
	Author       string     `json:"author"`
	Posted       time.Time  `json:"posted"`
	Description  string     `json:"description,omitempty"`
	UpdatedDate  *time.Time `json:"updatedDate,omitempty"`
	Tags         []string   `json:"tags"`
	Featured     bool       `json:"featured"`
	Draft        bool       `json:"draft"`
	HeroImage    *HeroImage `json:"heroImage,omitempty"`
	SEO          *SEO       `json:"seo,omitempty"`
	ReadingTime  int        `json:"readingTime"`
	RelatedPosts []string   `json:"relatedPosts,omitempty"`
	Language     string     `json:"language,omitempty"`
}

// LastModified is the most recent of posted and updatedDate.
func (p BlogPost) LastModified() time.Time {
	if p.UpdatedDate != nil {
		return *p.UpdatedDate
	}
	return p.Posted
}

type Location struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Capacity.Max is nil for events without an attendee limit.
type Capacity struct {
	Max     *int `json:"max,omitempty"`
	Current int  `json:"current"`
}

type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Event is the normalized data of an events entry.
type Event struct {
	Title           string     `json:"title"`
	StartsAt        time.Time  `json:"startsAt"`
	EndsAt          time.Time  `json:"endsAt"`
	Description     string     `json:"description,omitempty"`
	Location        *Location  `json:"location,omitempty"`
	Category        string     `json:"category,omitempty"`
	Organizer       string     `json:"organizer,omitempty"`
	Featured        bool       `json:"featured"`
	Draft           bool       `json:"draft"`
	Capacity        Capacity   `json:"capacity"`
	Price           Price      `json:"price"`
	Tags            []string   `json:"tags"`
	HeroImage       *HeroImage `json:"heroImage,omitempty"`
	SEO             *SEO       `json:"seo,omitempty"`
	RegistrationURL string     `json:"registrationUrl,omitempty"`
	ContactEmail    string     `json:"contactEmail,omitempty"`
	DurationHours   float64    `json:"durationHours"`
	IsUpcoming      bool       `json:"isUpcoming"`
}
