// Package shell turns abstract "set variable", "define alias" and
// "undefine alias" operations into statements for the user's shell.
// A child process cannot touch its parent's environment, so coal prints
// these statements and a wrapper function (see HookSnippet) evaluates them.
package shell
