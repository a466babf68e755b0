// Package common holds helpers shared by the tool packages: the
// instrumented handler wrappers and argument extraction.
package common
