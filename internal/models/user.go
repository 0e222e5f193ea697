package models

// User is the authenticated account as reported by the backend.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// UserProfile holds the editable profile fields paired 1:1 with a User.
// The picture is uploaded as a multipart file; the backend returns its URL.
type UserProfile struct {
	ProfilePic *string `json:"profile_pic,omitempty"`
	Address    *string `json:"address,omitempty"`
	School     *string `json:"school,omitempty"`
	Course     *string `json:"course,omitempty"`
	Bio        *string `json:"bio,omitempty"`
}
