package dto

type IssueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}
