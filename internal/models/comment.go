package models

import "time"

type Comment struct {
	ID             string    `json:"_id"`
	PostID         string    `json:"postId"`
	UserName       string    `json:"userName"`
	UserProfilePic string    `json:"userProfilePic,omitempty"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"createdAt"`
}
