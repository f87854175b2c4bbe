package dto

// UpdateProfileRequest changes the user's name fields
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required" example:"John"`
	LastName  string `json:"lastName" binding:"required" example:"Doe"`
}

// ChangeEmailRequest starts an email change; the new address stays unconfirmed
// until the activation code is submitted.
type ChangeEmailRequest struct {
	Email string `json:"email" binding:"required,email" example:"new@example.com"`
}

// ChangePasswordRequest changes the password after verifying the old one
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// DeleteAccountRequest confirms account deletion with the current password
type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}
