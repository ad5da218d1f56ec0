package transport

// RegisterRequest creates an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest opens a session.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TTL      int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// TaskRequest carries task fields; DueDate uses the YYYY-MM-DD form.
type TaskRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DueDate     string `json:"due_date"`
	Attachment  string `json:"attachment"`
}

// ProfileUpdateRequest carries profile fields; BirthDate uses YYYY-MM-DD.
type ProfileUpdateRequest struct {
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Title              string `json:"title"`
	Bio                string `json:"bio"`
	Location           string `json:"location"`
	BirthDate          string `json:"birth_date"`
	Phone              string `json:"phone"`
	Website            string `json:"website"`
	Avatar             string `json:"avatar"`
	EmailNotifications bool   `json:"email_notifications"`
}
