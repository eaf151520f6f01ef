package domain

import "time"

// Gender is the self-reported gender of a profile.
type Gender string

const (
	GenderMale      Gender = "Male"
	GenderFemale    Gender = "Female"
	GenderNonBinary Gender = "Non-binary"
)

// UserProfile is the local user's profile, created once during setup and
// immutable for the rest of the session.
type UserProfile struct {
	ID        string    `json:"id,omitempty"`
	Nickname  string    `json:"nickname"`
	PhotoURL  string    `json:"photo_url"`
	Gender    Gender    `json:"gender"`
	Age       string    `json:"age"`
	Language  string    `json:"language"`
	Interests []string  `json:"interests"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// MaxInterests caps how many interest tags a profile may carry.
const MaxInterests = 5

// Option catalogs shown during profile setup.
var (
	InterestOptions = []string{
		"Travel", "Coffee", "Music", "Gaming", "Cooking",
		"Fitness", "Art", "Movies", "Reading", "Photography",
		"Hiking", "Wine", "Tech", "Yoga", "Pets",
	}

	Languages = []string{"Korean", "English", "Japanese", "Spanish", "French", "Chinese"}

	AgeGroups = []string{"20s", "30s", "40s", "50s", "60s+"}

	RandomNicknames = []string{
		"Summer", "Luna", "Ocean", "Leo", "Sky",
		"Haru", "Sora", "Oliver", "Mochi", "Star",
	}
)
