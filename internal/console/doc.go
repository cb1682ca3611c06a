// Package console is the core of the admin console: the session guard that
// gates it, the list controllers for users and orders, the dispatcher that
// runs row actions, and the tab navigator. It renders through the View,
// Prompter and Navigator ports and never touches a terminal directly.
package console
