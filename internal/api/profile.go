package api

// ProfileUpdate collects profile fields to send in a PATCH. Only fields set
// through the named setters are serialized, so the server sees exactly the
// provided subset and nothing else.
type ProfileUpdate struct {
	FirstName           *string   `json:"first_name,omitempty"`
	LastName            *string   `json:"last_name,omitempty"`
	PhoneNumber         *string   `json:"phone_number,omitempty"`
	StreetAddress       *string   `json:"street_address,omitempty"`
	City                *string   `json:"city,omitempty"`
	State               *string   `json:"state,omitempty"`
	Country             *string   `json:"country,omitempty"`
	PreferredCategories *[]string `json:"preferred_categories,omitempty"`
	PreferredLanguages  *[]string `json:"preferred_languages,omitempty"`
	PreferredAgeGroups  *[]string `json:"preferred_age_groups,omitempty"`
	MaxDistanceKM       *int      `json:"max_distance_km,omitempty"`
	EmailNotifications  *bool     `json:"email_notifications,omitempty"`
	EventReminders      *bool     `json:"event_reminders,omitempty"`
}

// NewProfileUpdate returns an empty update; chain setters to populate it
func NewProfileUpdate() *ProfileUpdate {
	return &ProfileUpdate{}
}

// IsEmpty reports whether no field has been set
func (p *ProfileUpdate) IsEmpty() bool {
	return p.FirstName == nil &&
		p.LastName == nil &&
		p.PhoneNumber == nil &&
		p.StreetAddress == nil &&
		p.City == nil &&
		p.State == nil &&
		p.Country == nil &&
		p.PreferredCategories == nil &&
		p.PreferredLanguages == nil &&
		p.PreferredAgeGroups == nil &&
		p.MaxDistanceKM == nil &&
		p.EmailNotifications == nil &&
		p.EventReminders == nil
}

// SetFirstName sets the first name field
func (p *ProfileUpdate) SetFirstName(v string) *ProfileUpdate {
	p.FirstName = &v
	return p
}

// SetLastName sets the last name field
func (p *ProfileUpdate) SetLastName(v string) *ProfileUpdate {
	p.LastName = &v
	return p
}

// SetPhoneNumber sets the phone number field
func (p *ProfileUpdate) SetPhoneNumber(v string) *ProfileUpdate {
	p.PhoneNumber = &v
	return p
}

// SetStreetAddress sets the street address field
func (p *ProfileUpdate) SetStreetAddress(v string) *ProfileUpdate {
	p.StreetAddress = &v
	return p
}

// SetCity sets the city field
func (p *ProfileUpdate) SetCity(v string) *ProfileUpdate {
	p.City = &v
	return p
}

// SetState sets the state field
func (p *ProfileUpdate) SetState(v string) *ProfileUpdate {
	p.State = &v
	return p
}

// SetCountry sets the country field
func (p *ProfileUpdate) SetCountry(v string) *ProfileUpdate {
	p.Country = &v
	return p
}

// SetPreferredCategories sets the preferred event categories
func (p *ProfileUpdate) SetPreferredCategories(v []string) *ProfileUpdate {
	p.PreferredCategories = &v
	return p
}

// SetPreferredLanguages sets the preferred event languages
func (p *ProfileUpdate) SetPreferredLanguages(v []string) *ProfileUpdate {
	p.PreferredLanguages = &v
	return p
}

// SetPreferredAgeGroups sets the preferred age groups
func (p *ProfileUpdate) SetPreferredAgeGroups(v []string) *ProfileUpdate {
	p.PreferredAgeGroups = &v
	return p
}

// SetMaxDistanceKM sets the maximum travel distance in kilometers
func (p *ProfileUpdate) SetMaxDistanceKM(v int) *ProfileUpdate {
	p.MaxDistanceKM = &v
	return p
}

// SetEmailNotifications toggles email notifications
func (p *ProfileUpdate) SetEmailNotifications(v bool) *ProfileUpdate {
	p.EmailNotifications = &v
	return p
}

// SetEventReminders toggles event reminder notifications
func (p *ProfileUpdate) SetEventReminders(v bool) *ProfileUpdate {
	p.EventReminders = &v
	return p
}
