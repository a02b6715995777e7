// Package page fetches the bridge announcement page and splits its HTML into
// ordered text blocks for the schedule engine
package page
