package api

// User is the authenticated user's identity and profile as the server
// returns it. The session owns the in-memory copy; views never mutate it.
type User struct {
	ID                  int      `json:"id"`
	Email               string   `json:"email"`
	FirstName           string   `json:"first_name"`
	LastName            string   `json:"last_name"`
	PhoneNumber         string   `json:"phone_number"`
	StreetAddress       string   `json:"street_address"`
	City                string   `json:"city"`
	State               string   `json:"state"`
	Country             string   `json:"country"`
	PreferredCategories []string `json:"preferred_categories"`
	PreferredLanguages  []string `json:"preferred_languages"`
	PreferredAgeGroups  []string `json:"preferred_age_groups"`
	MaxDistanceKM       *int     `json:"max_distance_km"`
	EmailNotifications  bool     `json:"email_notifications"`
	EventReminders      bool     `json:"event_reminders"`
}

// Pricing values for events
const (
	PricingFree = "free"
	PricingPaid = "paid"
)

// Approval status values for events
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Event is a community event as served by the API. IsLiked and IsSaved are
// per-viewing-user flags the server overlays on each fetch.
type Event struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Date           string `json:"date"`
	Location       string `json:"location"`
	Pricing        string `json:"pricing"`
	Category       string `json:"category"`
	EventType      string `json:"event_type"`
	Language       string `json:"language"`
	AgeGroup       string `json:"age_group"`
	CreatedBy      int    `json:"created_by"`
	ApprovalStatus string `json:"approval_status"`
	Image          string `json:"image,omitempty"`
	CreatedAt      string `json:"created_at"`
	IsLiked        bool   `json:"is_liked,omitempty"`
	IsSaved        bool   `json:"is_saved,omitempty"`
	LikesCount     int    `json:"likes_count,omitempty"`
	SavesCount     int    `json:"saves_count,omitempty"`
}

// Upload is a file attachment sent as one part of a multipart request
type Upload struct {
	Filename string
	Content  []byte
}

// CreateEventData is the payload for creating an event. A non-nil Image
// switches the request to multipart encoding.
type CreateEventData struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Location    string  `json:"location"`
	Pricing     string  `json:"pricing"`
	Category    string  `json:"category"`
	EventType   string  `json:"event_type"`
	Language    string  `json:"language"`
	AgeGroup    string  `json:"age_group"`
	Image       *Upload `json:"-"`
}

// UpdateEventData is the payload for updating an event; only set fields
// are sent
type UpdateEventData struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Location    *string `json:"location,omitempty"`
	Pricing     *string `json:"pricing,omitempty"`
	Category    *string `json:"category,omitempty"`
	EventType   *string `json:"event_type,omitempty"`
	Language    *string `json:"language,omitempty"`
	AgeGroup    *string `json:"age_group,omitempty"`
	Image       *Upload `json:"-"`
}

// LoginCredentials is the login request payload
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterData is the registration request payload
type RegisterData struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthResponse is the server's answer to login and register; Key becomes
// the bearer token
type AuthResponse struct {
	Key  string `json:"key"`
	User *User  `json:"user,omitempty"`
}

// PasswordChangeData is the payload for changing the password while
// logged in
type PasswordChangeData struct {
	OldPassword  string `json:"old_password"`
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`
}

// PasswordResetConfirmData completes a password reset started by email
type PasswordResetConfirmData struct {
	UID          string `json:"uid"`
	Token        string `json:"token"`
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`
}

// InteractionResponse is the server's answer to a like or save toggle
type InteractionResponse struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
	Saved   bool   `json:"saved"`
}
