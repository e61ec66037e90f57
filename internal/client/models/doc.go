// Package models defines the wire and view types of the oposiciones API.
package models
