// Package sound renders the alarm tone and plays it through the host's
// audio player.
package sound
