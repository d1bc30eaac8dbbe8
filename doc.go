// Package main provides the entry point for the Caraban campsite-booking API.
// It initializes and runs a web server using the Fiber framework that exposes
// a JSON REST API for campsites, reservations and reviews, authenticating
// callers through Firebase ID tokens or Kakao access tokens. The application
// uses gorm for data persistence.
package main
