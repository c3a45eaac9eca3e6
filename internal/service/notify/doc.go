// Package notify delivers alarm fires to the user: an alert line on the
// display and a short tone played in the background.
package notify
