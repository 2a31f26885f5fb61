// Package channel maps pipeline ids to the physical addresses of BTS channels.
//
// A pipeline id is the string "{devid}-{subdevid}-{chlid}", e.g. "21-1-1".
// The Map is built once per connection from the getdevinfo response and is
// read-only afterwards; reconnecting builds a new one.
package channel
