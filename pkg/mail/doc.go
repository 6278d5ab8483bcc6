// Package mail renders the contact notification and acknowledgment messages
// and delivers them one recipient at a time through an authenticated SMTP relay.
package mail
