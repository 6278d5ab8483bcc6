// Package cli defines the contact-mailer command tree: serve (the default),
// verify-smtp, render and version.
package cli
