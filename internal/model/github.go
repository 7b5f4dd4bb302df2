package model

import "errors"

// GithubRepo is the subset of the GitHub repository payload the profile
// page displays.
type GithubRepo struct {
	Name        string  `json:"name"`
	HTMLURL     string  `json:"html_url"`
	Description *string `json:"description"`
	Stargazers  int     `json:"stargazers_count"`
	Watchers    int     `json:"watchers_count"`
	Forks       int     `json:"forks_count"`
}

// ErrGithubUserNotFound is returned when GitHub reports no such user.
var ErrGithubUserNotFound = errors.New("github user not found")
