// Package usno queries the US Naval Observatory for one day of sun and moon
// data at a location (see Client.OneDay). A successful query returns a Record
// with the sunrise and sunset instants in UTC, the current moon phase, and the
// illuminated fraction of the moon.
package usno
