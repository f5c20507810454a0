package models

import "time"

type User struct {
	ID           int          `json:"id" db:"id"`
	Username     string       `json:"username" db:"username"`
	Password     string       `json:"-" db:"password"` // hash.salt, наружу не отдаём никогда
	ProfileImage *string      `json:"profileImage,omitempty" db:"profile_image"`
	FirstName    *string      `json:"firstName,omitempty" db:"first_name"`
	LastName     *string      `json:"lastName,omitempty" db:"last_name"`
	Email        *string      `json:"email,omitempty" db:"email"`
	Bio          *string      `json:"bio,omitempty" db:"bio"`
	JobTitle     *string      `json:"jobTitle,omitempty" db:"job_title"`
	Organization *string      `json:"organization,omitempty" db:"organization"`
	Preferences  *Preferences `json:"preferences,omitempty" db:"preferences"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
}

// Preferences - настройки доступности и рабочего стиля пользователя.
// Явная схема вместо произвольного json, чтобы форма не расползалась.
type Preferences struct {
	Theme               string `json:"theme,omitempty"`
	FontSize            int    `json:"fontSize,omitempty"`
	LineSpacing         int    `json:"lineSpacing,omitempty"`
	DyslexicFont        bool   `json:"dyslexicFont,omitempty"`
	ReduceMotion        bool   `json:"reduceMotion,omitempty"`
	Density             string `json:"density,omitempty"`
	VisualNotifications bool   `json:"visualNotifications,omitempty"`
	AudioNotifications  bool   `json:"audioNotifications,omitempty"`
	HapticFeedback      bool   `json:"hapticFeedback,omitempty"`
	WorkStyle           string `json:"workStyle,omitempty"`
	FocusPreference     string `json:"focusPreference,omitempty"`
	EnergyLevel         string `json:"energyLevel,omitempty"`
}

type UserOption func(*User)

func WithFirstName(firstName string) UserOption {
	return func(u *User) {
		u.FirstName = &firstName
	}
}

func WithLastName(lastName string) UserOption {
	return func(u *User) {
		u.LastName = &lastName
	}
}

func WithEmail(email string) UserOption {
	return func(u *User) {
		u.Email = &email
	}
}

func WithBio(bio string) UserOption {
	return func(u *User) {
		u.Bio = &bio
	}
}

func WithJobTitle(jobTitle string) UserOption {
	return func(u *User) {
		u.JobTitle = &jobTitle
	}
}

func WithOrganization(organization string) UserOption {
	return func(u *User) {
		u.Organization = &organization
	}
}

func WithProfileImage(profileImage string) UserOption {
	return func(u *User) {
		u.ProfileImage = &profileImage
	}
}

func WithPreferences(prefs Preferences) UserOption {
	return func(u *User) {
		u.Preferences = &prefs
	}
}
