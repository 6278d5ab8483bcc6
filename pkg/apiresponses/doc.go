// Package apiresponses provides the {success, message} JSON envelope and
// the Respond* helpers shared by the api and contact packages.
package apiresponses
