// Package contact implements the contact form endpoints: accepting a
// submission, notifying the configured recipient, acknowledging the
// submitter and previewing the notification template outside production.
package contact
