// Package validate_tools provides the validate tool the Puch platform
// uses to pair the server with its owner.
package validate_tools
