// Package metrics defines Prometheus metrics for the contact mailer,
// covering API endpoints, contact submissions and mail delivery.
package metrics
