package api

import "time"

type App struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner_email,omitempty"`
	Stack     string    `json:"stack,omitempty"`
	WebURL    string    `json:"web_url,omitempty"`
	GitURL    string    `json:"git_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
