// Package prompt collects interactive input for a scan session: the
// reference phone numbers and the URL of the page to audit.
package prompt
