// Package shell implements the interactive text menu of the cloakroom: it
// deposits, collects and changes locker contents on behalf of a customer at
// the terminal and renders the results.
package shell
